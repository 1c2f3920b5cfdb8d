package customer

import (
	"go.uber.org/fx"

	customersvc "github.com/Additional-Code/emporia/internal/service/customer"
)

// Module provides the customer repository to Fx.
var Module = fx.Provide(
	fx.Annotate(NewRepository, fx.As(new(customersvc.Repository))),
)
