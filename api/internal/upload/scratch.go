package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// fallbackName is used when nothing of the client filename survives sanitizing.
const fallbackName = "upload"

// Scratch is a directory for transient copies of uploaded images.
// Every saved file gets a fresh uuid prefix, so two requests carrying the
// same filename never share a path.
type Scratch struct {
	dir string
}

// NewScratch creates dir if it is absent.
func NewScratch(dir string) (*Scratch, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	return &Scratch{dir: dir}, nil
}

func (s *Scratch) Dir() string { return s.dir }

// Save writes r under a request-unique name derived from filename and
// returns the full path.
func (s *Scratch) Save(filename string, r io.Reader) (string, error) {
	// каталог могли удалить между запросами
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating scratch directory: %w", err)
	}

	path := filepath.Join(s.dir, uuid.New().String()+"_"+SanitizeFilename(filename))
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return "", fmt.Errorf("creating scratch file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("writing scratch file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("closing scratch file: %w", err)
	}
	return path, nil
}

// Remove deletes a saved file. A file that is already gone is not an error.
func (s *Scratch) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing scratch file: %w", err)
	}
	return nil
}

// SanitizeFilename reduces a client-supplied filename to a flat ASCII name
// that is safe to join to a directory: NFKD folding, path separators become
// spaces, whitespace runs become '_', anything outside [A-Za-z0-9_.-] is
// dropped and leading/trailing '.' and '_' are stripped.
func SanitizeFilename(name string) string {
	name = norm.NFKD.String(name)

	var b strings.Builder
	for _, r := range name {
		if r < 0x80 {
			b.WriteRune(r)
		}
	}
	name = b.String()

	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name == "" {
		return fallbackName
	}
	return name
}
