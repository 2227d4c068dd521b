/*
Shrdlited starts a shrdlite planning server and begins listening for new
connections.

Usage:

	shrdlited [flags]
	shrdlited [flags] -l [[ADDRESS]:PORT]

Once started, the server listens for HTTP requests and responds using REST
protocol. By default, it listens on localhost:8080. This can be changed with
the --listen/-l flag (or its environment variable equivalent).

If a JWT token secret is not given, one is automatically generated. As a
consequence, in this mode of operation all tokens are rendered invalid as
soon as the server shuts down. This is suitable for testing, but a stable
secret must be given via either the CLI flag or environment variable for
production use.

The flags are:

	-v, --version
		Give the current version of the server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, defaults to the value of environment variable
		SHRDLITE_LISTEN_ADDRESS, and if that is not given, defaults to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are fewer
		than 32 bytes in the secret, it is repeated until it is. The maximum
		size is 64 bytes. If not given, defaults to the value of environment
		variable SHRDLITE_TOKEN_SECRET. If no secret is specified, a random
		secret is automatically generated.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of: inmem,
		sqlite. inmem has no further params. sqlite needs the path to the
		data directory, e.g. sqlite:path/to/db_dir. If not given, defaults to
		the value of environment variable SHRDLITE_DATABASE, and if that is
		not given, an in-memory database is selected.

	--operator-user USERNAME
	--operator-pass PASSWORD
		Bootstrap the server's single operator credential the first time it
		starts against an empty operator table. Ignored on subsequent starts.
*/
package main

import (
	"crypto/rand"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/shrdlite/planner/internal/version"
	"github.com/shrdlite/planner/server"
)

const (
	EnvListen = "SHRDLITE_LISTEN_ADDRESS"
	EnvSecret = "SHRDLITE_TOKEN_SECRET"
	EnvDB     = "SHRDLITE_DATABASE"
)

var (
	flagVersion      = pflag.BoolP("version", "v", false, "Give the current version of the server and then exit.")
	flagListen       = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret       = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB           = pflag.String("db", "", "Use the given DB connection string.")
	flagOperatorUser = pflag.String("operator-user", "", "Bootstrap the operator username.")
	flagOperatorPass = pflag.String("operator-pass", "", "Bootstrap the operator password.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("shrdlited (shrdlite v%s)\n", version.Current)
		return
	}

	if len(pflag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	addr, port, err := parseListenAddr(envOrFlag(EnvListen, flagListen, "listen"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dbConnStr := envOrFlag(EnvDB, flagDB, "db")
	var db server.Database
	if dbConnStr == "" {
		db = server.Database{Type: server.DatabaseInMemory}
	} else {
		db, err = server.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	tokSecret, warnGenerated := resolveSecret(envOrFlag(EnvSecret, flagSecret, "secret"))
	if warnGenerated {
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}

	cfg := server.Config{
		TokenSecret:       tokSecret,
		DB:                db,
		BootstrapUsername: *flagOperatorUser,
		BootstrapPassword: *flagOperatorPass,
	}

	srv, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	log.Printf("DEBUG Server initialized")

	listenAddr := fmt.Sprintf("%s:%d", addr, port)
	log.Printf("INFO  Starting shrdlite server on %s...", listenAddr)
	if err := http.ListenAndServe(listenAddr, srv); err != nil {
		log.Fatalf("FATAL server exited: %s", err.Error())
	}
}

func envOrFlag(env string, flag *string, name string) string {
	if pflag.Lookup(name).Changed {
		return *flag
	}
	return os.Getenv(env)
}

func parseListenAddr(listenAddr string) (addr string, port int, err error) {
	if listenAddr == "" {
		return "localhost", 8080, nil
	}

	bindParts := strings.SplitN(listenAddr, ":", 2)
	if len(bindParts) != 2 {
		return "", 0, fmt.Errorf("listen address is not in ADDRESS:PORT or :PORT format")
	}

	port, err = strconv.Atoi(bindParts[1])
	if err != nil {
		return "", 0, fmt.Errorf("%q is not a valid port number", bindParts[1])
	}
	return bindParts[0], port, nil
}

func resolveSecret(tokSecStr string) (secret []byte, wasGenerated bool) {
	if tokSecStr == "" {
		secret = make([]byte, 64)
		if _, err := rand.Read(secret); err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err.Error())
			os.Exit(1)
		}
		return secret, true
	}

	secret = []byte(tokSecStr)
	for len(secret) < 32 {
		doubled := make([]byte, len(secret)*2)
		copy(doubled, secret)
		copy(doubled[len(secret):], secret)
		secret = doubled
	}
	if len(secret) > 64 {
		fmt.Fprintf(os.Stderr, "Token secret is %d bytes, but it must be <= 64 bytes\nDo -h for help.\n", len(secret))
		os.Exit(1)
	}
	return secret, false
}
