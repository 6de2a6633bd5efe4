// issue_token emite un token de desarrollo firmado con JWT_SECRET, JWT_ISSUER y
// JWT_EXPIRATION_MINUTES, para probar la API sin un proveedor de identidad.
//
// Uso: go run ./cmd/issue_token <user_id> <admin|auditor|operator>
package main

import (
	"fmt"
	"os"

	"github.com/jhoicas/Impuestos-api/pkg/config"
	"github.com/jhoicas/Impuestos-api/pkg/jwt"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: issue_token <user_id> <admin|auditor|operator>")
		os.Exit(2)
	}
	userID, role := os.Args[1], os.Args[2]
	switch role {
	case jwt.RoleAdmin, jwt.RoleAuditor, jwt.RoleOperator:
	default:
		fmt.Fprintf(os.Stderr, "rol desconocido: %q\n", role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, userID, role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
