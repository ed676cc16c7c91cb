package project

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePackageSource(t *testing.T) {
	tests := []struct {
		dep  string
		want PackageSource
	}{
		{
			dep:  "gh:fmtlib/fmt#11.0.2",
			want: PackageSource{Git: &GitSource{URL: "https://github.com/fmtlib/fmt.git", Tag: "11.0.2"}},
		},
		{
			dep:  "cb:someone/something",
			want: PackageSource{Git: &GitSource{URL: "https://codeberg.org/someone/something.git"}},
		},
		{
			dep:  "git:https://example.com/repo.git#v1",
			want: PackageSource{Git: &GitSource{URL: "https://example.com/repo.git", Tag: "v1"}},
		},
		{
			dep:  "https://example.com/pkg.zip",
			want: PackageSource{Download: &DownloadSource{URL: "https://example.com/pkg.zip"}},
		},
		{
			dep:  "https://example.com/pkg.zip#SHA256=abc",
			want: PackageSource{Download: &DownloadSource{URL: "https://example.com/pkg.zip", Checksum: "SHA256=abc"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.dep, func(t *testing.T) {
			got, err := ParsePackageSource(tt.dep)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, dep := range []string{"", "fmtlib/fmt", "./vendor/fmt"} {
		_, err := ParsePackageSource(dep)
		assert.ErrorIs(t, err, errIllegalDep, dep)
	}
}

func TestPackageSourceShorthandInDescription(t *testing.T) {
	var packages map[string]PackageSource
	require.NoError(t, json.Unmarshal([]byte(`{"fmt": "gh:fmtlib/fmt#11.0.2"}`), &packages))

	require.NotNil(t, packages["fmt"].Git)
	assert.Equal(t, "https://github.com/fmtlib/fmt.git", packages["fmt"].Git.URL)
	assert.Equal(t, "11.0.2", packages["fmt"].Git.Tag)
}

func TestValidateName(t *testing.T) {
	for _, name := range []string{"main.cpp", "src", "detail/impl.cpp", "./lib.hpp"} {
		assert.NoError(t, ValidateName(name), name)
	}
	for _, name := range []string{"", ".", "..", "../x.cpp", "a/../../x.cpp", "/abs.cpp", `dir\file.cpp`} {
		assert.Error(t, ValidateName(name), name)
	}
}
