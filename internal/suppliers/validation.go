package suppliers

import (
	"strings"

	"github.com/mos234/vegetable-orders/internal/shared"
)

func normalize(in Input) (Input, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Notes = strings.TrimSpace(in.Notes)
	if err := shared.Validate(in); err != nil {
		return Input{}, err
	}
	return in, nil
}
