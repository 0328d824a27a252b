package vocab

import (
	"context"
	"io"
	"math/rand"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Vocabulary downloads fetch the three tier-dictionary files from a
// HuggingFace-style repo into a local cache directory. Downloads go to a
// uniquely named temporary file and are moved into place atomically; a
// lock file coordinates multiple processes fetching the same file.

// DefaultEndpoint is the host the dictionary files are resolved against.
const DefaultEndpoint = "https://huggingface.co"

// DefaultDirCreationPerm is used when creating cache directories.
const DefaultDirCreationPerm = os.FileMode(0755)

// DownloadOptions configure Download.
type DownloadOptions struct {
	// RepoID is the hub repository holding the dictionary files, in
	// "owner/name" form. Required.
	RepoID string
	// Endpoint overrides DefaultEndpoint, e.g. for a mirror or a test
	// server.
	Endpoint string
	// CacheDir is where downloaded files are kept. Defaults to
	// os.UserCacheDir()/turkish-tokenizer.
	CacheDir string
	// Revision is the branch, tag or commit to resolve. Defaults to
	// "main".
	Revision string
	// Force re-downloads files even when they are already cached.
	Force bool
	// Client overrides http.DefaultClient.
	Client *http.Client
}

func (o *DownloadOptions) endpoint() string {
	if o.Endpoint != "" {
		return o.Endpoint
	}
	return DefaultEndpoint
}

func (o *DownloadOptions) revision() string {
	if o.Revision != "" {
		return o.Revision
	}
	return "main"
}

func (o *DownloadOptions) client() *http.Client {
	if o.Client != nil {
		return o.Client
	}
	return http.DefaultClient
}

func (o *DownloadOptions) cacheDir() (string, error) {
	if o.CacheDir != "" {
		return o.CacheDir, nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Wrapf(err, "no cache dir available, set DownloadOptions.CacheDir")
	}
	return filepath.Join(base, "turkish-tokenizer"), nil
}

func (o *DownloadOptions) fileURL(file string) string {
	return o.endpoint() + "/" + o.RepoID + "/resolve/" + o.revision() + "/" + file
}

// Download fetches the three tier dictionaries for opts.RepoID into the
// cache directory and parses them. Already-cached files are reused unless
// opts.Force is set.
func Download(ctx context.Context, opts DownloadOptions) (*Dictionaries, error) {
	if opts.RepoID == "" {
		return nil, errors.Errorf("DownloadOptions.RepoID is required")
	}
	cacheDir, err := opts.cacheDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(cacheDir, filepath.FromSlash(opts.RepoID), opts.revision())
	for _, file := range []string{RootsFile, SuffixesFile, BPEFile} {
		filePath := filepath.Join(dir, file)
		if err := lockedDownload(ctx, opts.client(), opts.fileURL(file), filePath, opts.Force); err != nil {
			return nil, err
		}
	}
	return LoadDir(dir)
}

// lockedDownload fetches url to filePath.
//
// If filePath exists and force is false, it is assumed to have been
// correctly downloaded and the call returns immediately. The file is
// downloaded to a uniquely named temporary path and then atomically moved
// to filePath. A filePath+".lock" file coordinates multiple processes
// downloading the same file at the same time.
func lockedDownload(ctx context.Context, client *http.Client, url, filePath string, force bool) error {
	if fileExists(filePath) {
		if !force {
			return nil
		}
		if err := os.Remove(filePath); err != nil {
			return errors.Wrapf(err, "failed to remove %q while force-downloading %q", filePath, url)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(path.Dir(filePath), DefaultDirCreationPerm); err != nil {
		return errors.Wrapf(err, "failed to create directory for file %q", filePath)
	}

	lockPath := filePath + ".lock"
	var mainErr error
	errLock := execOnFileLock(ctx, lockPath, func() {
		if fileExists(filePath) {
			// Some concurrent other process already downloaded the file.
			return
		}
		tmpPath := filePath + "." + uuid.NewString() + ".downloading"
		mainErr = fetchToFile(ctx, client, url, tmpPath)
		if mainErr != nil {
			if err := os.Remove(tmpPath); err != nil && !os.IsNotExist(err) {
				klog.Warningf("failed removing temporary file %q: %v", tmpPath, err)
			}
			return
		}
		if err := os.Rename(tmpPath, filePath); err != nil {
			mainErr = errors.Wrapf(err, "failed to move downloaded file %q to %q", tmpPath, filePath)
			return
		}
		if err := os.Remove(lockPath); err != nil {
			klog.Warningf("error removing lock file %q: %v", lockPath, err)
		}
	})
	if mainErr != nil {
		return mainErr
	}
	if errLock != nil {
		return errors.WithMessagef(errLock, "while locking %q to download %q", lockPath, url)
	}
	return nil
}

// fetchToFile downloads url into tmpPath.
func fetchToFile(ctx context.Context, client *http.Client, url, tmpPath string) error {
	klog.V(1).Infof("downloading %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrapf(err, "building request for %q", url)
	}
	resp, err := client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "while downloading %q", url)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("downloading %q: unexpected status %s", url, resp.Status)
	}

	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return errors.Wrapf(err, "creating temporary file for download in %q", tmpPath)
	}
	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		_ = tmpFile.Close()
		return errors.Wrapf(err, "while downloading %q to %q", url, tmpPath)
	}
	if err := tmpFile.Close(); err != nil {
		return errors.Wrapf(err, "failed to close temporary download file %q", tmpPath)
	}
	return nil
}

// execOnFileLock opens lockPath (creating it if needed), locks it, and
// executes fn. If the lock is held elsewhere it polls with a 1 to 2
// second period until acquired or the context ends. The lock file is not
// removed; it is safe for fn to remove it when no further calls with the
// same lockPath will be made.
func execOnFileLock(ctx context.Context, lockPath string, fn func()) (err error) {
	fileLock := flock.New(lockPath)
	for {
		locked, err := fileLock.TryLock()
		if err != nil {
			return errors.Wrapf(err, "while trying to lock %q", lockPath)
		}
		if locked {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Millisecond * time.Duration(1000+rand.Intn(1000))):
		}
	}
	defer func() {
		unlockErr := fileLock.Unlock()
		if unlockErr != nil && err == nil {
			err = errors.Wrapf(unlockErr, "unlocking file %q", lockPath)
		}
	}()
	fn()
	return
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
