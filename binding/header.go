package binding

import (
	"net/http"
	"net/textproto"
)

type headerBinding struct{}

func (headerBinding) Name() string {
	return "header"
}

func (headerBinding) Bind(req *http.Request, obj any) error {
	if err := mapByTag(obj, req.Header, "header", textproto.CanonicalMIMEHeaderKey); err != nil {
		return err
	}

	return validate(obj)
}
