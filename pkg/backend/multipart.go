package backend

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// FilePart is one file to be re-framed into an outbound multipart body.
type FilePart struct {
	// Field is the form field name the backend expects.
	Field string

	Filename    string
	ContentType string

	// Open returns the file contents. The relay closes the reader.
	Open func() (io.ReadCloser, error)
}

// FilePartFromHeader builds a FilePart from an uploaded file, renaming its
// field to field. The original filename and content type are kept.
func FilePartFromHeader(field string, fh *multipart.FileHeader) FilePart {
	return FilePart{
		Field:       field,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			f, err := fh.Open()
			if err != nil {
				return nil, err
			}
			return f, nil
		},
	}
}

// Relay POSTs parts to path as a fresh multipart/form-data body. The body is
// written through an io.Pipe while the request is sent.
func (c *Client) Relay(ctx context.Context, path, authorization string, parts []FilePart) (*Response, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeParts(mw, parts)
		if err == nil {
			err = mw.Close()
		}
		// A nil error closes the pipe normally.
		pw.CloseWithError(err)
	}()

	resp, err := c.Do(ctx, &Request{
		Method:        http.MethodPost,
		Path:          path,
		Authorization: authorization,
		ContentType:   mw.FormDataContentType(),
		Body:          pr,
	})
	// Unblocks the writer if the transport stopped reading early.
	_ = pr.Close()
	return resp, err
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeParts(mw *multipart.Writer, parts []FilePart) error {
	for _, part := range parts {
		if err := writePart(mw, part); err != nil {
			return err
		}
	}
	return nil
}

func writePart(mw *multipart.Writer, part FilePart) error {
	contentType := part.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(part.Field), quoteEscaper.Replace(part.Filename)))
	h.Set("Content-Type", contentType)

	w, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("failed to create part %q: %w", part.Field, err)
	}

	src, err := part.Open()
	if err != nil {
		return fmt.Errorf("failed to open part %q: %w", part.Field, err)
	}
	defer src.Close()

	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("failed to copy part %q: %w", part.Field, err)
	}
	return nil
}
