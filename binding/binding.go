// Package binding decodes request payloads into Go values and validates
// them through the `binding` struct tag.
package binding

import (
	"net/http"
	"reflect"

	"github.com/go-playground/validator/v10"
)

const (
	MIMEJSON              = "application/json"
	MIMEXML               = "application/xml"
	MIMEXML2              = "text/xml"
	MIMEPlain             = "text/plain"
	MIMEPOSTForm          = "application/x-www-form-urlencoded"
	MIMEMultipartPOSTForm = "multipart/form-data"
	MIMEPROTOBUF          = "application/x-protobuf"
	MIMEMSGPACK           = "application/x-msgpack"
	MIMEMSGPACK2          = "application/msgpack"
	MIMEYAML              = "application/yaml"
	MIMEYAML2             = "application/x-yaml"
	MIMETOML              = "application/toml"
)

// Binding decodes a request into obj.
type Binding interface {
	Name() string
	Bind(*http.Request, any) error
}

// BindingBody decodes a raw body into obj.
type BindingBody interface {
	Binding
	BindBody([]byte, any) error
}

var (
	JSON     BindingBody = jsonBinding{}
	XML      BindingBody = xmlBinding{}
	YAML     BindingBody = yamlBinding{}
	TOML     BindingBody = tomlBinding{}
	MsgPack  BindingBody = msgpackBinding{}
	ProtoBuf BindingBody = protobufBinding{}
	Plain    BindingBody = plainBinding{}
	Query    Binding     = queryBinding{}
	Form     Binding     = formBinding{}
	Header   Binding     = headerBinding{}
)

// Default returns the binding engine matching the method and content type.
func Default(method, contentType string) Binding {
	if method == http.MethodGet {
		return Query
	}

	switch contentType {
	case MIMEJSON:
		return JSON
	case MIMEXML, MIMEXML2:
		return XML
	case MIMEPROTOBUF:
		return ProtoBuf
	case MIMEMSGPACK, MIMEMSGPACK2:
		return MsgPack
	case MIMEYAML, MIMEYAML2:
		return YAML
	case MIMETOML:
		return TOML
	default: // MIMEPOSTForm, MIMEMultipartPOSTForm
		return Form
	}
}

var structValidator = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// validate runs struct validation when obj is (a pointer to) a struct,
// otherwise it is a no-op.
func validate(obj any) error {
	if obj == nil {
		return nil
	}
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}
	return structValidator.Struct(obj)
}
