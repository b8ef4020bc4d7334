//go:build swag

package swaggerkit

import docs "airwatch/internal/services/api/docs"

// docReader returns the document generated by swag init
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
