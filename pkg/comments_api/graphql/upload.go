package graphql

import (
	"fmt"
	"mime/multipart"
)

// Upload is the scalar carrying a multipart file into a mutation, following
// the graphql-multipart-request-spec: the HTTP handler substitutes
// *multipart.FileHeader values into the variables map and the packer lands
// here.
type Upload struct {
	File     multipart.File
	Filename string
	Size     int64
}

func (Upload) ImplementsGraphQLType(name string) bool { return name == "Upload" }

func (u *Upload) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case *multipart.FileHeader:
		f, err := v.Open()
		if err != nil {
			return fmt.Errorf("upload: open %q: %w", v.Filename, err)
		}
		*u = Upload{File: f, Filename: v.Filename, Size: v.Size}
		return nil
	case Upload:
		*u = v
		return nil
	default:
		return fmt.Errorf("upload: unexpected variable type %T", input)
	}
}

func (u *Upload) Close() error {
	if u.File == nil {
		return nil
	}
	return u.File.Close()
}
