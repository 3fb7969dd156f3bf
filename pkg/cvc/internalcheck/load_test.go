package internalcheck

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"
)

// checkedPackages are the packages that handle key material.
var checkedPackages = []string{
	"github.com/MyNextID/cvc-go/pkg/cvc",
	"github.com/MyNextID/cvc-go/pkg/cvc/curve",
	"github.com/MyNextID/cvc-go/pkg/cvc/h2f",
	"github.com/MyNextID/cvc-go/pkg/cvc/jwk",
	"github.com/MyNextID/cvc-go/pkg/cvc/rng",
	"github.com/MyNextID/cvc-go/pkg/cvc/provider",
	"github.com/MyNextID/cvc-go/pkg/cvc/issuer",
	"github.com/MyNextID/cvc-go/pkg/cvc/internal/backend",
}

func loadPackages(t *testing.T) []*packages.Package {
	t.Helper()
	cfg := &packages.Config{
		Mode: packages.NeedSyntax | packages.NeedTypes | packages.NeedTypesInfo |
			packages.NeedFiles | packages.NeedName | packages.NeedImports,
	}
	pkgs, err := packages.Load(cfg, checkedPackages...)
	require.NoError(t, err, "load packages")
	require.Len(t, pkgs, len(checkedPackages))
	for _, pkg := range pkgs {
		require.Empty(t, pkg.Errors, "package %s has errors", pkg.PkgPath)
	}
	return pkgs
}
