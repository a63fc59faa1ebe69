package output

import (
	"context"

	"taskchat/internal/domain/entity"
)

type WeatherPort interface {
	Current(ctx context.Context, city string) (*entity.WeatherReport, error)
}
