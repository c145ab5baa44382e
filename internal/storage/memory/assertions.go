package memory

import "github.com/tallyfold/mis/internal/service/classify"

// Compile-time checks that the store satisfies the service interfaces.
var (
	_ classify.Repo   = (*Store)(nil)
	_ classify.Writer = (*Store)(nil)
)
