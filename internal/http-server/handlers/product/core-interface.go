package product

import (
	"Showcase/entity"
	"context"
)

type Core interface {
	Page(ctx context.Context, sessionID, requested string) (*entity.PageView, error)
}
