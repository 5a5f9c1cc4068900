// Command conprog-login runs the classic login dialogue twice — once
// through the synchronous interpreter and once through the asynchronous
// one — over the same program value, against the real terminal.
package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/inert-io/conprog/console"
	"github.com/inert-io/conprog/interp"
	"github.com/inert-io/conprog/program"
)

func login() program.Program[bool] {
	return program.Bind(program.Print("user:"), func(program.Unit) program.Program[bool] {
		return program.Bind(program.Read(), func(user string) program.Program[bool] {
			return program.Bind(program.Print("password:"), func(program.Unit) program.Program[bool] {
				return program.Bind(program.Read(), func(pw string) program.Program[bool] {
					return program.Pure(user == "me" && pw == "hola123")
				})
			})
		})
	})
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	in := interp.New(console.Std(), interp.WithLogger(logger))
	defer in.Close()

	ok, err := interp.Run(ctx, in, login())
	if err != nil {
		logger.Fatal("synchronous run failed", zap.Error(err))
	}
	fmt.Println("sync login:", ok)

	t := interp.RunAsync(ctx, in, login())
	ok, err = t.Await(ctx)
	if err != nil {
		logger.Fatal("asynchronous run failed", zap.Error(err))
	}
	fmt.Println("async login:", ok)
}
