package object

import (
	"bytes"
	"io"
	"io/fs"
	"maps"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sync"
)

// CreateFS is a file system that supports reading, creating files, and directories.
type CreateFS interface {
	// Sub returns a filesystem for a subdirectory.
	Sub(name string) (sub CreateFS, err error)
	// Open opens a file for reading.
	Open(name string) (file io.ReadCloser, err error)
	// Create creates a new file for writing.
	Create(name string) (file io.WriteCloser, err error)
	// Mkdir creates a new directory with the specified permissions.
	Mkdir(name string, filemode fs.FileMode) (err error)
}

// DirFS is a CreateFS rooted at an operating system directory.
// The empty DirFS resolves names relative to the working directory.
type DirFS string

var _ CreateFS = DirFS("")

func (dir DirFS) join(name string) string {
	if len(dir) == 0 || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(string(dir), name)
}

func (dir DirFS) Sub(name string) (sub CreateFS, err error) {
	full := dir.join(name)
	info, err := os.Stat(full)
	if err != nil {
		return
	}
	if !info.IsDir() {
		err = &fs.PathError{Op: "sub", Path: full, Err: fs.ErrInvalid}
		return
	}
	sub = DirFS(full)
	return
}

func (dir DirFS) Open(name string) (file io.ReadCloser, err error) {
	return os.Open(dir.join(name))
}

func (dir DirFS) Create(name string) (file io.WriteCloser, err error) {
	return os.Create(dir.join(name))
}

func (dir DirFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	return os.Mkdir(dir.join(name), filemode)
}

// MemFS is an in-memory CreateFS.
type MemFS struct {
	mutex *sync.Mutex
	root  string
	files map[string]*bytes.Buffer
	dirs  map[string]bool
}

var _ CreateFS = &MemFS{}

// NewMemFS creates an empty in-memory filesystem.
func NewMemFS() (mfs *MemFS) {
	mfs = &MemFS{
		mutex: &sync.Mutex{},
		files: map[string]*bytes.Buffer{},
		dirs:  map[string]bool{".": true},
	}
	return
}

func (mfs *MemFS) join(name string) string {
	return path.Join(mfs.root, name)
}

// WriteFile stores a file.
func (mfs *MemFS) WriteFile(name string, data []byte) {
	mfs.mutex.Lock()
	defer mfs.mutex.Unlock()
	mfs.files[mfs.join(name)] = bytes.NewBuffer(slices.Clone(data))
}

// ReadFile returns the content of a file.
func (mfs *MemFS) ReadFile(name string) (data []byte, ok bool) {
	mfs.mutex.Lock()
	defer mfs.mutex.Unlock()
	buf, ok := mfs.files[mfs.join(name)]
	if ok {
		data = slices.Clone(buf.Bytes())
	}
	return
}

// Files returns the sorted names of all files.
func (mfs *MemFS) Files() []string {
	mfs.mutex.Lock()
	defer mfs.mutex.Unlock()
	return slices.Sorted(maps.Keys(mfs.files))
}

func (mfs *MemFS) Sub(name string) (sub CreateFS, err error) {
	mfs.mutex.Lock()
	defer mfs.mutex.Unlock()
	full := mfs.join(name)
	if !mfs.dirs[full] {
		err = &fs.PathError{Op: "sub", Path: full, Err: fs.ErrNotExist}
		return
	}
	sub = &MemFS{mutex: mfs.mutex, root: full, files: mfs.files, dirs: mfs.dirs}
	return
}

func (mfs *MemFS) Open(name string) (file io.ReadCloser, err error) {
	data, ok := mfs.ReadFile(name)
	if !ok {
		err = &fs.PathError{Op: "open", Path: mfs.join(name), Err: fs.ErrNotExist}
		return
	}
	file = io.NopCloser(bytes.NewReader(data))
	return
}

type memFile struct {
	bytes.Buffer
	mfs  *MemFS
	name string
}

func (mf *memFile) Close() (err error) {
	mf.mfs.mutex.Lock()
	defer mf.mfs.mutex.Unlock()
	mf.mfs.files[mf.name] = &mf.Buffer
	return
}

func (mfs *MemFS) Create(name string) (file io.WriteCloser, err error) {
	mfs.mutex.Lock()
	defer mfs.mutex.Unlock()
	full := mfs.join(name)
	if !mfs.dirs[path.Dir(full)] {
		err = &fs.PathError{Op: "create", Path: full, Err: fs.ErrNotExist}
		return
	}
	file = &memFile{mfs: mfs, name: full}
	return
}

func (mfs *MemFS) Mkdir(name string, filemode fs.FileMode) (err error) {
	mfs.mutex.Lock()
	defer mfs.mutex.Unlock()
	full := mfs.join(name)
	switch {
	case mfs.dirs[full]:
		err = &fs.PathError{Op: "mkdir", Path: full, Err: fs.ErrExist}
	case !mfs.dirs[path.Dir(full)]:
		err = &fs.PathError{Op: "mkdir", Path: full, Err: fs.ErrNotExist}
	default:
		mfs.dirs[full] = true
	}
	return
}
