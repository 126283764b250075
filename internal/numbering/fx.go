package numbering

import (
	"github.com/smallbiznis/facturio/internal/numbering/repository"
	"github.com/smallbiznis/facturio/internal/numbering/service"
	"go.uber.org/fx"
)

var Module = fx.Module("numbering.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
