package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"reflect"
	"strings"

	"github.com/friendsofgo/errors"

	"github.com/kondoo/console/core"
)

// Form is a request payload that may bundle binary attachments with scalar
// and structured fields. With at least one attachment it encodes as
// multipart; otherwise as a plain JSON body.
//
// The platform API correlates repeated file parts with their parent array
// entries by position, not by key, so AddFile preserves per-field insertion
// order exactly; violating it corrupts data server-side.
type Form struct {
	fields []formField
	files  []filePart
}

type formField struct {
	key   string
	value interface{}
}

type filePart struct {
	field string
	att   *core.Attachment
}

func NewForm() *Form {
	return &Form{}
}

// Set adds a field. Structured values (arrays, maps, structs) end up
// JSON-stringified inside multipart bundles; scalars are written as-is.
func (f *Form) Set(key string, value interface{}) *Form {
	f.fields = append(f.fields, formField{key: key, value: value})
	return f
}

// AddFile appends an attachment under the given field name. A nil
// attachment is skipped, which is how positional holes collapse: the
// encoded parts for a field follow the source array's filtered order.
func (f *Form) AddFile(field string, att *core.Attachment) *Form {
	if att == nil {
		return f
	}
	f.files = append(f.files, filePart{field: field, att: att})
	return f
}

func (f *Form) HasFiles() bool {
	return len(f.files) > 0
}

// Encode renders the form body and its Content-Type.
func (f *Form) Encode() (io.Reader, string, error) {
	if !f.HasFiles() {
		return f.encodeJSON()
	}
	return f.encodeMultipart()
}

func (f *Form) encodeJSON() (io.Reader, string, error) {
	body := make(map[string]interface{}, len(f.fields))
	for _, fld := range f.fields {
		body[fld.key] = fld.value
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, "", errors.Wrap(err, "encoding form body")
	}
	return bytes.NewReader(b), "application/json", nil
}

func (f *Form) encodeMultipart() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, fld := range f.fields {
		val, err := stringifyField(fld.value)
		if err != nil {
			return nil, "", errors.Wrapf(err, "encoding form field %q", fld.key)
		}
		if err := w.WriteField(fld.key, val); err != nil {
			return nil, "", errors.Wrapf(err, "writing form field %q", fld.key)
		}
	}

	for _, fp := range f.files {
		part, err := createFilePart(w, fp)
		if err != nil {
			return nil, "", errors.Wrapf(err, "creating file part %q", fp.field)
		}
		if fp.att.Content != nil {
			if _, err := io.Copy(part, bytes.NewReader(fp.att.Content.Bytes())); err != nil {
				return nil, "", errors.Wrapf(err, "writing file part %q", fp.field)
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "closing multipart body")
	}
	return &buf, w.FormDataContentType(), nil
}

// stringifyField applies the wire rule: structured values become JSON
// strings (the server parses them out of the text part), scalars are sent
// verbatim.
func stringifyField(v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "", nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Struct:
		b, err := json.Marshal(rv.Interface())
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		return fmt.Sprint(rv.Interface()), nil
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func createFilePart(w *multipart.Writer, fp filePart) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(fp.field), quoteEscaper.Replace(fp.att.Filename)))
	contentType := fp.att.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	h.Set("Content-Type", contentType)
	return w.CreatePart(h)
}
