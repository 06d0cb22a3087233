package metadata

import (
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"bilimux/internal/services"
)

// DescriptorName is the per-episode metadata file written by the downloader.
const DescriptorName = "entry.json"

// Descriptor mirrors the subset of entry.json the pipeline consumes. Unknown
// fields are ignored.
type Descriptor struct {
	Title string `json:"title"`
	Ep    struct {
		IndexTitle string `json:"index_title"`
		Index      string `json:"index"`
	} `json:"ep"`
	TypeTag string `json:"type_tag"`
}

func (d Descriptor) validate() error {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Ep.Index) == "" {
		missing = append(missing, "ep.index")
	}
	if strings.TrimSpace(d.TypeTag) == "" {
		missing = append(missing, "type_tag")
	}
	if len(missing) > 0 {
		return errors.New("missing " + strings.Join(missing, ", "))
	}
	return nil
}

// ReadDescriptor loads and validates <dir>/entry.json.
func ReadDescriptor(fsys afero.Fs, dir string) (Descriptor, error) {
	path := filepath.Join(dir, DescriptorName)
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Descriptor{}, services.Wrap(ErrMissingDescriptor, "metadata", "read descriptor", path, nil)
		}
		return Descriptor{}, services.Wrap(ErrInvalidDescriptor, "metadata", "read descriptor", path, err)
	}
	var desc Descriptor
	if err := json.Unmarshal(data, &desc); err != nil {
		return Descriptor{}, services.Wrap(ErrInvalidDescriptor, "metadata", "parse descriptor", path, err)
	}
	if err := desc.validate(); err != nil {
		return Descriptor{}, services.Wrap(ErrInvalidDescriptor, "metadata", "validate descriptor", path, err)
	}
	return desc, nil
}
