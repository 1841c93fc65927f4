package present

import (
	"encoding/json"

	"github.com/spacesedan/sentiview/internal/render"
)

func JSON(resp render.Response) ([]byte, error) {
	return json.MarshalIndent(resp, "", "  ")
}
