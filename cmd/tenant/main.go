// Package main provides CLI for tenant database management.
// Usage: tenant list
//        tenant migrate --all
//        tenant migrate --id <user-id>
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"stockpile/internal/core/tenant"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "list":
		listTenants(ctx)
	case "migrate":
		migrateTenants(ctx)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Stockpile Tenant Management CLI

Usage:
  tenant <command> [options]

Commands:
  list      List all tenant databases (one per registered user)
  migrate   Create missing tenant databases and apply the current schema
  help      Show this help

Environment Variables:
  CONTROL_DATABASE_URL Connection string for the control database (required)
  TENANT_DB_HOST       Tenant database server host (default localhost)
  TENANT_DB_PORT       Tenant database server port (default 5432)
  TENANT_DB_USER       Username for tenant databases (required for migrate)
  TENANT_DB_PASSWORD   Password for tenant databases (required for migrate)
  TENANT_DB_SSLMODE    SSL mode for tenant databases (default disable)

Examples:
  tenant list
  tenant migrate --all
  tenant migrate --id 42`)
}

func getControlPool(ctx context.Context) *pgxpool.Pool {
	dsn := os.Getenv("CONTROL_DATABASE_URL")
	if dsn == "" {
		fmt.Println("Error: CONTROL_DATABASE_URL environment variable is required")
		os.Exit(1)
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		fmt.Printf("Error connecting to control database: %v\n", err)
		os.Exit(1)
	}

	return pool
}

func getProvisioner(pool *pgxpool.Pool) *tenant.Provisioner {
	user := os.Getenv("TENANT_DB_USER")
	password := os.Getenv("TENANT_DB_PASSWORD")
	if user == "" || password == "" {
		fmt.Println("Error: TENANT_DB_USER and TENANT_DB_PASSWORD are required")
		os.Exit(1)
	}

	port := 5432
	if p := os.Getenv("TENANT_DB_PORT"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil {
			port = parsed
		}
	}

	host := os.Getenv("TENANT_DB_HOST")
	if host == "" {
		host = "localhost"
	}
	sslMode := os.Getenv("TENANT_DB_SSLMODE")
	if sslMode == "" {
		sslMode = "disable"
	}

	return tenant.NewProvisioner(pool, tenant.ProvisionerConfig{
		DBHost:     host,
		DBPort:     port,
		DBUser:     user,
		DBPassword: password,
		DBSSLMode:  sslMode,
	})
}

func listTenants(ctx context.Context) {
	pool := getControlPool(ctx)
	defer pool.Close()

	registry := tenant.NewPostgresRegistry(pool)
	tenants, err := registry.ListAll(ctx)
	if err != nil {
		fmt.Printf("Error listing tenants: %v\n", err)
		os.Exit(1)
	}

	if len(tenants) == 0 {
		fmt.Println("No tenants registered.")
		return
	}

	fmt.Printf("%-8s %-20s %-32s %-10s %s\n", "ID", "LOGIN", "EMAIL", "VERIFIED", "DATABASE")
	for _, t := range tenants {
		fmt.Printf("%-8d %-20s %-32s %-10t %s\n",
			t.ID, t.LoginID, t.Email, t.EmailVerified, t.DBName())
	}
}

func migrateTenants(ctx context.Context) {
	pool := getControlPool(ctx)
	defer pool.Close()

	if err := tenant.EnsureControlSchema(ctx, pool); err != nil {
		fmt.Printf("Error migrating control database: %v\n", err)
		os.Exit(1)
	}

	provisioner := getProvisioner(pool)
	registry := tenant.NewPostgresRegistry(pool)

	var targets []*tenant.Tenant

	switch {
	case len(os.Args) > 2 && os.Args[2] == "--all":
		all, err := registry.ListAll(ctx)
		if err != nil {
			fmt.Printf("Error listing tenants: %v\n", err)
			os.Exit(1)
		}
		targets = all

	case len(os.Args) > 3 && os.Args[2] == "--id":
		userID, err := strconv.ParseInt(os.Args[3], 10, 64)
		if err != nil {
			fmt.Printf("Error: invalid user id %q\n", os.Args[3])
			os.Exit(1)
		}
		t, err := registry.GetByID(ctx, userID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		targets = []*tenant.Tenant{t}

	default:
		fmt.Println("Usage: tenant migrate --all | --id <user-id>")
		os.Exit(1)
	}

	for _, t := range targets {
		if err := provisioner.EnsureTenant(ctx, t.ID); err != nil {
			fmt.Printf("  %s: FAILED (%v)\n", t.DBName(), err)
			continue
		}
		fmt.Printf("  %s: ok\n", t.DBName())
	}
	fmt.Printf("Migrated %d tenant database(s).\n", len(targets))
}
