package solcbin

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

// Release describes one compiler build advertised by a release mirror's list.json.
type Release struct {
	// Path is the file name of the binary, relative to the mirror base URL.
	Path string `json:"path"`

	// Version is the short semver of the release (e.g. "0.8.29").
	Version string `json:"version"`

	// LongVersion is the full version string including the commit (e.g. "0.8.29+commit.d4b8c7ae").
	LongVersion string `json:"longVersion"`

	// SHA256 is the 0x-prefixed hex sha-256 checksum of the binary.
	SHA256 string `json:"sha256"`
}

// SemVer parses the release's long version into a semver value, falling back to the short
// version when the long form does not parse.
func (r Release) SemVer() (*semver.Version, error) {
	version, err := semver.NewVersion(r.LongVersion)
	if err != nil {
		version, err = semver.NewVersion(r.Version)
	}
	return version, err
}

// DirectoryName returns the name of the versioned store subdirectory the release's binary is
// installed under.
func (r Release) DirectoryName() string {
	return "v" + r.LongVersion
}

// Checksum returns the release's sha-256 checksum as plain hex, without the 0x prefix.
func (r Release) Checksum() string {
	return strings.TrimPrefix(strings.ToLower(r.SHA256), "0x")
}

// ReleaseList describes the mirror's list.json document.
type ReleaseList struct {
	// Builds is the full set of advertised compiler builds.
	Builds []Release `json:"builds"`

	// LatestRelease is the short version string of the newest release.
	LatestRelease string `json:"latestRelease"`
}

// FindVersion returns the release matching the given version, comparing against both the short
// and long version forms. Returns an error if no release matches.
func (l *ReleaseList) FindVersion(version string) (*Release, error) {
	for i, release := range l.Builds {
		if release.Version == version || release.LongVersion == version {
			return &l.Builds[i], nil
		}
	}
	return nil, errors.Errorf("compiler version '%s' is not advertised by the release mirror", version)
}

// Versions returns the advertised versions sorted newest-first.
func (l *ReleaseList) Versions() []*semver.Version {
	versions := make([]*semver.Version, 0, len(l.Builds))
	for _, release := range l.Builds {
		version, err := release.SemVer()
		if err != nil {
			continue
		}
		versions = append(versions, version)
	}
	slices.SortFunc(versions, func(a, b *semver.Version) int {
		return b.Compare(a)
	})
	return versions
}

// FetchReleaseList downloads and parses the list.json document of the mirror at the given base
// URL. The context bounds the HTTP request.
func FetchReleaseList(ctx context.Context, client *http.Client, baseURL string) (*ReleaseList, error) {
	listURL := fmt.Sprintf("%s/list.json", strings.TrimSuffix(baseURL, "/"))
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, errors.Wrap(err, "could not fetch the compiler release list")
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, errors.Errorf("could not fetch the compiler release list: mirror returned status %d", response.StatusCode)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, errors.Wrap(err, "could not read the compiler release list")
	}

	var list ReleaseList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, errors.Wrap(err, "could not parse the compiler release list")
	}
	return &list, nil
}
