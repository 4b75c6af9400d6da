// Package normalisers maps raw platform customers into domain.Customer.
// Each sub-package implements driven.CustomerNormaliser for one platform.
package normalisers
