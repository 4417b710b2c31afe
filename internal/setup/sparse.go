package setup

const (
	sparseWildcardPatternConstant          = "/*"
	sparseExcludeReadmePatternConstant     = "!README.md"
	sparseExcludeLicensePatternConstant    = "!LICENSE"
	sparseExcludeIgnorePatternConstant     = "!.gitignore"
	sparseExcludeAttributesPatternConstant = "!.gitattributes"
)

// SparseCheckoutPatterns returns the fixed pattern list written on init and
// clone. The wildcard materializes every tracked file into the home directory
// while the negated entries keep repository housekeeping files out of it.
func SparseCheckoutPatterns() []string {
	return []string{
		sparseWildcardPatternConstant,
		sparseExcludeReadmePatternConstant,
		sparseExcludeLicensePatternConstant,
		sparseExcludeIgnorePatternConstant,
		sparseExcludeAttributesPatternConstant,
	}
}
