package validation

import "strings"

// File is an uploaded file as seen by a field. Only the metadata needed for
// rendering and rules is kept alongside the raw bytes.
type File struct {
	Filename    string
	ContentType string
	Data        []byte
}

// String returns the filename so file fields render like other inputs.
func (f File) String() string {
	return f.Filename
}

// EmptyFile treats uploads without content as absent, which is what browsers
// send when a file input is left untouched.
func EmptyFile() AbsentValueStrategy[File] {
	return AbsentWhen(func(f File) bool { return len(f.Data) == 0 })
}

// ContentTypeIn accepts files whose content type matches one of the allowed
// types. A trailing "/*" matches a whole family, e.g. "image/*".
func ContentTypeIn(allowed ...string) Validator[File] {
	return func(f File) error {
		contentType := strings.ToLower(strings.TrimSpace(f.ContentType))
		if i := strings.IndexByte(contentType, ';'); i >= 0 {
			contentType = strings.TrimSpace(contentType[:i])
		}
		for _, candidate := range allowed {
			candidate = strings.ToLower(strings.TrimSpace(candidate))
			if family, ok := strings.CutSuffix(candidate, "/*"); ok {
				if strings.HasPrefix(contentType, family+"/") {
					return nil
				}
				continue
			}
			if candidate == contentType {
				return nil
			}
		}
		return Errorf("has unsupported type %q", f.ContentType)
	}
}

// MaxFileSize rejects files larger than limit bytes.
func MaxFileSize(limit int) Validator[File] {
	return func(f File) error {
		if len(f.Data) > limit {
			return Errorf("is larger than %d bytes", limit)
		}
		return nil
	}
}
