package app

import (
	"go.uber.org/fx"

	"github.com/Additional-Code/emporia/internal/cache"
	"github.com/Additional-Code/emporia/internal/config"
	"github.com/Additional-Code/emporia/internal/database"
	"github.com/Additional-Code/emporia/internal/logger"
	"github.com/Additional-Code/emporia/internal/messaging"
	"github.com/Additional-Code/emporia/internal/observability"
	repositoryaccount "github.com/Additional-Code/emporia/internal/repository/account"
	repositorycustomer "github.com/Additional-Code/emporia/internal/repository/customer"
	repositoryproduct "github.com/Additional-Code/emporia/internal/repository/product"
	httpserver "github.com/Additional-Code/emporia/internal/server/http"
	serviceaccount "github.com/Additional-Code/emporia/internal/service/account"
	servicecustomer "github.com/Additional-Code/emporia/internal/service/customer"
	serviceproduct "github.com/Additional-Code/emporia/internal/service/product"
	transporthttp "github.com/Additional-Code/emporia/internal/transport/http"
	"github.com/Additional-Code/emporia/internal/worker"
	workerinventory "github.com/Additional-Code/emporia/internal/worker/inventory"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	database.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositorycustomer.Module,
	repositoryaccount.Module,
	repositoryproduct.Module,
	servicecustomer.Module,
	serviceaccount.Module,
	serviceproduct.Module,
)

// HTTP wires the HTTP transport on top of the core modules.
var HTTP = fx.Options(
	Core,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background worker processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerinventory.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
