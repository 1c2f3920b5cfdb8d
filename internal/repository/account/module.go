package account

import (
	"go.uber.org/fx"

	accountsvc "github.com/Additional-Code/emporia/internal/service/account"
)

// Module provides the customer account repository to Fx.
var Module = fx.Provide(
	fx.Annotate(NewRepository, fx.As(new(accountsvc.Repository))),
)
