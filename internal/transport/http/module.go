package http

import (
	"go.uber.org/fx"

	accounttransport "github.com/Additional-Code/emporia/internal/transport/http/account"
	customertransport "github.com/Additional-Code/emporia/internal/transport/http/customer"
	producttransport "github.com/Additional-Code/emporia/internal/transport/http/product"
)

// Module aggregates all HTTP transport handlers.
var Module = fx.Options(
	customertransport.Module,
	accounttransport.Module,
	producttransport.Module,
)
