package state

import "strings"

// File is an uploaded document held in the session store. The engine treats
// it as opaque; exporters read Name for extension handling and Data for
// attachment bodies.
type File struct {
	Name string
	Data []byte
}

// Ext returns the lowercased extension without the dot, or "" when the
// original name has none.
func (f *File) Ext() string {
	if f == nil {
		return ""
	}
	idx := strings.LastIndex(f.Name, ".")
	if idx < 0 || idx == len(f.Name)-1 {
		return ""
	}
	return strings.ToLower(f.Name[idx+1:])
}

// GetFiles reads key as a multi-upload slice, dropping nil entries.
func GetFiles(s Store, key string) []*File {
	raw, ok := s.Get(key, nil).([]*File)
	if !ok {
		return nil
	}
	out := make([]*File, 0, len(raw))
	for _, f := range raw {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}
