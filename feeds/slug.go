package feeds

import "github.com/goliatone/go-slug"

// SlugNormalizer exposes the slug normalizer interface used for aliases.
type SlugNormalizer = slug.Normalizer

// DefaultSlugNormalizer returns the default alias normalizer.
func DefaultSlugNormalizer() SlugNormalizer {
	return slug.Default()
}

// NormalizeAlias applies the default slug normalization rules to an alias.
func NormalizeAlias(value string) (string, error) {
	return slug.Normalize(value)
}

// IsValidAlias reports whether the alias matches the default slug rules.
func IsValidAlias(value string) bool {
	return slug.IsValid(value)
}
