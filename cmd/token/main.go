// Command token issues operator access tokens signed with JWT_SECRET_KEY.
//
//	go run ./cmd/token -user u-1 -name "Maria" -role operator -companies c1,c2
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/nexter-rh/nexter-backend-go/internal/config"
	"github.com/nexter-rh/nexter-backend-go/internal/pkg/jwt"
)

func main() {
	userID := flag.String("user", "", "operator user id")
	name := flag.String("name", "", "operator display name")
	role := flag.String("role", string(jwt.RoleOperator), "admin or operator")
	companies := flag.String("companies", "", "comma separated company ids the operator may access")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		os.Exit(2)
	}
	if r := jwt.Role(*role); r != jwt.RoleAdmin && r != jwt.RoleOperator {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	op := jwt.Operator{UserID: *userID, Name: *name, Role: jwt.Role(*role)}
	for _, id := range strings.Split(*companies, ",") {
		if id = strings.TrimSpace(id); id != "" {
			op.CompanyIDs = append(op.CompanyIDs, id)
		}
	}

	token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(op)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to generate token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires at %s\n", time.Unix(expiresAt, 0).Format(time.RFC3339))
}
