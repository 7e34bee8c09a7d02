package solcbin

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestMirror starts an httptest server advertising the given binaries as compiler releases,
// with correct sha-256 checksums, and returns it.
func newTestMirror(t *testing.T, binaries map[string][]byte) *httptest.Server {
	list := ReleaseList{}
	for longVersion := range binaries {
		digest := sha256.Sum256(binaries[longVersion])
		shortVersion := longVersion[:len("0.8.29")]
		list.Builds = append(list.Builds, Release{
			Path:        "solc-linux-amd64-v" + longVersion,
			Version:     shortVersion,
			LongVersion: longVersion,
			SHA256:      "0x" + hex.EncodeToString(digest[:]),
		})
		if shortVersion > list.LatestRelease {
			list.LatestRelease = shortVersion
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/list.json", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(list)
	})
	for longVersion, data := range binaries {
		mux.HandleFunc("/solc-linux-amd64-v"+longVersion, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(data)
		})
	}

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// TestFetchReleaseList will test fetching and parsing a mirror's list.json.
func TestFetchReleaseList(t *testing.T) {
	server := newTestMirror(t, map[string][]byte{
		"0.8.29+commit.d4b8c7ae": []byte("fake solc 0.8.29"),
		"0.8.30+commit.73712a01": []byte("fake solc 0.8.30"),
	})

	list, err := FetchReleaseList(context.Background(), http.DefaultClient, server.URL)
	require.NoError(t, err)
	assert.Equal(t, 2, len(list.Builds))

	// Versions are returned newest-first.
	versions := list.Versions()
	require.Equal(t, 2, len(versions))
	assert.Equal(t, "0.8.30+commit.73712a01", versions[0].String())

	// Both short and long version forms resolve a release.
	release, err := list.FindVersion("0.8.29")
	require.NoError(t, err)
	assert.Equal(t, "0.8.29+commit.d4b8c7ae", release.LongVersion)
	_, err = list.FindVersion("0.8.30+commit.73712a01")
	assert.NoError(t, err)
	_, err = list.FindVersion("0.4.0")
	assert.Error(t, err)
}

// TestStoreInstallAndResolve will test installing releases into the store and resolving binary
// paths out of it.
func TestStoreInstallAndResolve(t *testing.T) {
	server := newTestMirror(t, map[string][]byte{
		"0.8.29+commit.d4b8c7ae": []byte("fake solc 0.8.29"),
		"0.8.30+commit.73712a01": []byte("fake solc 0.8.30"),
	})

	store, err := NewStore(t.TempDir(), server.URL)
	require.NoError(t, err)

	// Install an explicit version and verify the on-disk layout.
	binaryPath, err := store.Install(context.Background(), "0.8.29")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(store.Directory(), "v0.8.29+commit.d4b8c7ae", BinaryName), binaryPath)
	data, err := os.ReadFile(binaryPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake solc 0.8.29"), data)

	// An empty version installs the latest release.
	_, err = store.Install(context.Background(), "")
	require.NoError(t, err)

	// Installing an already-installed version is a no-op.
	_, err = store.Install(context.Background(), "0.8.29")
	require.NoError(t, err)

	// The store enumerates installed versions newest-first.
	installed, err := store.InstalledVersions()
	require.NoError(t, err)
	require.Equal(t, 2, len(installed))
	assert.Equal(t, "0.8.30+commit.73712a01", installed[0].String())

	// Binary path resolution: empty selects the newest, explicit versions match on
	// major.minor.patch, unknown versions error.
	newest, err := store.BinaryPath("")
	require.NoError(t, err)
	assert.Contains(t, newest, "v0.8.30+commit.73712a01")
	pinned, err := store.BinaryPath("0.8.29")
	require.NoError(t, err)
	assert.Contains(t, pinned, "v0.8.29+commit.d4b8c7ae")
	_, err = store.BinaryPath("0.7.6")
	assert.Error(t, err)
}

// TestStoreChecksumMismatch will test that a corrupted download is rejected and not installed.
func TestStoreChecksumMismatch(t *testing.T) {
	binary := []byte("fake solc 0.8.29")
	mux := http.NewServeMux()
	mux.HandleFunc("/list.json", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"builds":[{"path":"solc-linux-amd64-v0.8.29+commit.d4b8c7ae","version":"0.8.29","longVersion":"0.8.29+commit.d4b8c7ae","sha256":"0xdeadbeef"}],"latestRelease":"0.8.29"}`)
	})
	mux.HandleFunc("/solc-linux-amd64-v0.8.29+commit.d4b8c7ae", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(binary)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	store, err := NewStore(t.TempDir(), server.URL)
	require.NoError(t, err)

	_, err = store.Install(context.Background(), "0.8.29")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")

	// The rejected binary must not have been installed.
	installed, err := store.InstalledVersions()
	require.NoError(t, err)
	assert.Empty(t, installed)
}

// TestStoreEmptyDirectory will test store behavior before anything is installed.
func TestStoreEmptyDirectory(t *testing.T) {
	store, err := NewStore(t.TempDir(), "http://127.0.0.1:0")
	require.NoError(t, err)

	installed, err := store.InstalledVersions()
	require.NoError(t, err)
	assert.Empty(t, installed)

	_, err = store.BinaryPath("")
	assert.Error(t, err)
}
