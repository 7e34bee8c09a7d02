package solcbin

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver"
	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/HemeraProtocol/seismic-verify/logging"
	"github.com/HemeraProtocol/seismic-verify/utils"
)

// BinaryName is the file name every installed compiler binary is stored under inside its
// versioned subdirectory.
const BinaryName = "solc"

// Store manages a local directory of compiler binaries, one versioned subdirectory per release
// (e.g. `v0.8.29+commit.d4b8c7ae/solc`), and installs new releases from a mirror.
type Store struct {
	// directory is the root directory binaries are stored under.
	directory string

	// baseURL is the base URL of the release mirror.
	baseURL string

	// client is the HTTP client used for mirror requests.
	client *http.Client

	// logger describes the Store's log object that can be used to log messages and print
	// to console.
	logger *logging.Logger
}

// NewStore returns a Store over the given directory, installing from the mirror at the given
// base URL. The directory is created if it does not exist.
func NewStore(directory string, baseURL string) (*Store, error) {
	if directory == "" {
		return nil, errors.New("could not create compiler store: no directory provided")
	}
	if err := utils.MakeDirectory(directory); err != nil {
		return nil, errors.Wrap(err, "could not create the compiler store directory")
	}

	return &Store{
		directory: directory,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		client:    http.DefaultClient,
		logger:    logging.GlobalLogger.NewSubLogger("module", "solcbin"),
	}, nil
}

// Directory returns the root directory of the store.
func (s *Store) Directory() string {
	return s.directory
}

// InstalledVersions returns the versions installed in the store, sorted newest-first.
func (s *Store) InstalledVersions() ([]*semver.Version, error) {
	entries, err := os.ReadDir(s.directory)
	if err != nil {
		return nil, errors.Wrap(err, "could not enumerate the compiler store")
	}

	var versions []*semver.Version
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), "v") {
			continue
		}

		// A versioned directory only counts as installed if the binary is present inside it.
		if !utils.FileExists(filepath.Join(s.directory, entry.Name(), BinaryName)) {
			continue
		}
		version, err := semver.NewVersion(strings.TrimPrefix(entry.Name(), "v"))
		if err != nil {
			continue
		}
		versions = append(versions, version)
	}
	slices.SortFunc(versions, func(a, b *semver.Version) int {
		return b.Compare(a)
	})
	return versions, nil
}

// BinaryPath returns the path of the installed binary for the given version, resolving an empty
// version to the newest installed one. Returns an error when no matching binary is installed.
func (s *Store) BinaryPath(version string) (string, error) {
	installed, err := s.InstalledVersions()
	if err != nil {
		return "", err
	}
	if len(installed) == 0 {
		return "", errors.Errorf("no compiler binaries are installed under '%s'", s.directory)
	}

	// An empty version selects the newest installed release.
	if version == "" {
		return s.binaryPathFor(installed[0]), nil
	}

	requested, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return "", errors.Wrapf(err, "could not parse compiler version '%s'", version)
	}
	for _, candidate := range installed {
		if candidate.Major() == requested.Major() && candidate.Minor() == requested.Minor() && candidate.Patch() == requested.Patch() {
			return s.binaryPathFor(candidate), nil
		}
	}
	return "", errors.Errorf("compiler version '%s' is not installed under '%s'", version, s.directory)
}

// binaryPathFor returns the expected binary path of an installed version.
func (s *Store) binaryPathFor(version *semver.Version) string {
	return filepath.Join(s.directory, "v"+version.String(), BinaryName)
}

// Install downloads the release for the given version from the mirror, verifies its sha-256
// checksum, and installs it into the store. Returns the installed binary path. Installing an
// already-installed version is a no-op.
func (s *Store) Install(ctx context.Context, version string) (string, error) {
	// Resolve the requested version against the mirror's advertised releases.
	list, err := FetchReleaseList(ctx, s.client, s.baseURL)
	if err != nil {
		return "", err
	}
	if version == "" {
		version = list.LatestRelease
	}
	release, err := list.FindVersion(version)
	if err != nil {
		return "", err
	}

	// Short-circuit if the release is already installed.
	binaryPath := filepath.Join(s.directory, release.DirectoryName(), BinaryName)
	if utils.FileExists(binaryPath) {
		s.logger.Info("compiler ", release.LongVersion, " is already installed")
		return binaryPath, nil
	}

	// Download the binary and verify its checksum before it is marked executable.
	s.logger.Info("downloading compiler ", release.LongVersion, " from ", s.baseURL)
	data, err := s.download(ctx, release.Path)
	if err != nil {
		return "", err
	}
	if err := verifyChecksum(data, release.Checksum()); err != nil {
		return "", errors.Wrapf(err, "could not install compiler '%s'", release.LongVersion)
	}

	if err := utils.MakeDirectory(filepath.Dir(binaryPath)); err != nil {
		return "", errors.Wrap(err, "could not create the versioned compiler directory")
	}
	if err := os.WriteFile(binaryPath, data, 0755); err != nil {
		return "", errors.Wrap(err, "could not write the compiler binary")
	}

	s.logger.Info("installed compiler ", release.LongVersion, " at ", binaryPath)
	return binaryPath, nil
}

// download fetches a release binary from the mirror. The context bounds the HTTP request.
func (s *Store) download(ctx context.Context, releasePath string) ([]byte, error) {
	downloadURL := fmt.Sprintf("%s/%s", s.baseURL, releasePath)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	response, err := s.client.Do(request)
	if err != nil {
		return nil, errors.Wrapf(err, "could not download '%s'", downloadURL)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return nil, errors.Errorf("could not download '%s': mirror returned status %d", downloadURL, response.StatusCode)
	}

	return io.ReadAll(response.Body)
}

// verifyChecksum compares the sha-256 hash of data against an expected hex checksum. An empty
// expected checksum skips verification, as some mirrors do not advertise one.
func verifyChecksum(data []byte, expected string) error {
	if expected == "" {
		return nil
	}
	digest := sha256.Sum256(data)
	actual := hex.EncodeToString(digest[:])
	if actual != expected {
		return errors.Errorf("checksum mismatch: expected %s, computed %s", expected, actual)
	}
	return nil
}
