package product

import (
	"go.uber.org/fx"

	productsvc "github.com/Additional-Code/emporia/internal/service/product"
)

// Module provides the product repository to Fx.
var Module = fx.Provide(
	fx.Annotate(NewRepository, fx.As(new(productsvc.Repository))),
)
