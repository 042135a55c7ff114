package providers

import (
	"github.com/smallbiznis/saletrack/internal/providers/email"
	"github.com/smallbiznis/saletrack/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	email.Module,
	pdf.Module,
)
