package binding

import (
	"net/http"

	"github.com/pelletier/go-toml/v2"

	"github.com/vanehttp/vane/tools"
)

type tomlBinding struct{}

func (tomlBinding) Name() string {
	return "toml"
}

func (tomlBinding) Bind(req *http.Request, obj any) error {
	body, err := tools.ReadAll(req.Body)
	if err != nil {
		return err
	}
	return decodeToml(body, obj)
}

func (tomlBinding) BindBody(body []byte, obj any) error {
	return decodeToml(body, obj)
}

func decodeToml(b []byte, obj any) error {
	if err := toml.Unmarshal(b, obj); err != nil {
		return err
	}
	return validate(obj)
}
