package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/contracts/proxy"
	"github.com/reviewnet/reviewnet-contract/contracts/token"
	"github.com/reviewnet/reviewnet-contract/deploy"
	"github.com/reviewnet/reviewnet-contract/interop"
	"github.com/reviewnet/reviewnet-contract/tests/dump"
	"github.com/urfave/cli"
)

var fromFlag = cli.StringFlag{Name: "from", Usage: "Neo address of the caller (administrator if omitted)"}

var initNetwork = withEnv(func(_ *cli.Context, e *env) error {
	admin, err := e.cfg.Network.AdminAccount()
	if err != nil {
		return err
	}

	validators, err := e.cfg.Network.ValidatorAccounts()
	if err != nil {
		return err
	}

	allocations := make([]deploy.Allocation, len(e.cfg.Network.Allocations))
	for i := range allocations {
		allocations[i].Amount = e.cfg.Network.Allocations[i].Amount
		allocations[i].Account, err = address.StringToUint160(e.cfg.Network.Allocations[i].Account)
		if err != nil {
			return fmt.Errorf("allocation #%d: %w", i, err)
		}
	}

	return deploy.Deploy(context.Background(), deploy.Prm{
		Logger:         e.log,
		Dispatcher:     e.dispatcher,
		Admin:          admin,
		Implementation: e.cfg.Network.Implementation,
		Validators:     validators,
		Allocations:    allocations,
	})
})

var upgrade = withEnv(func(c *cli.Context, e *env) error {
	ref := c.Args().First()
	if ref == "" {
		return errors.New("missing module reference")
	}

	admin, err := e.dispatcher.Admin()
	if err != nil {
		return err
	}

	return e.dispatcher.SetImplementation(admin, ref)
})

var status = withEnv(func(_ *cli.Context, e *env) error {
	fmt.Printf("Network:        %s\n", address.Uint160ToString(e.dispatcher.Hash()))
	fmt.Printf("Token:          %s\n", address.Uint160ToString(e.dispatcher.Token().Hash()))

	admin, err := e.dispatcher.Admin()
	switch {
	case errors.Is(err, common.ErrNotInitialized):
		fmt.Println("Administrator:  none")
	case err != nil:
		return err
	default:
		fmt.Printf("Administrator:  %s\n", address.Uint160ToString(admin))
	}

	height, err := e.dispatcher.Height()
	if err != nil {
		return err
	}

	fmt.Printf("Height:         %d\n", height)
	fmt.Printf("Modules:        %s\n", strings.Join(e.dispatcher.Registry().Modules(), ", "))

	ref, version, err := e.dispatcher.Implementation()
	switch {
	case errors.Is(err, common.ErrNoImplementation):
		fmt.Println("Implementation: none")
	case err != nil:
		return err
	default:
		fmt.Printf("Implementation: %s %s\n", ref, common.VersionString(version))
	}

	return nil
})

func invoke(commit bool) cli.ActionFunc {
	return withEnv(func(c *cli.Context, e *env) error {
		args := c.Args()
		if len(args) == 0 {
			return errors.New("missing method name")
		}

		caller, err := callerAccount(c, e)
		if err != nil {
			return err
		}

		params := make([]any, len(args)-1)
		for i := range params {
			params[i] = parseParam(args[i+1])
		}

		method := args[0]

		var res *proxy.Result
		if commit {
			res, err = e.dispatcher.Invoke(caller, method, params...)
		} else {
			res, err = e.dispatcher.TestInvoke(caller, method, params...)
		}
		if err != nil {
			return fmt.Errorf("%s (%s): %w", method, common.ClassOf(err), err)
		}

		return printResult(res)
	})
}

func callerAccount(c *cli.Context, e *env) (util.Uint160, error) {
	if from := c.String("from"); from != "" {
		return address.StringToUint160(from)
	}

	admin, err := e.dispatcher.Admin()
	if err != nil {
		return util.Uint160{}, fmt.Errorf("default caller: %w (run init or pass --from)", err)
	}

	return admin, nil
}

// parseParam converts command line argument into method parameter: decimal
// integers, Neo addresses and 0x-prefixed hex strings are recognized, the
// rest is passed as string.
func parseParam(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}

	if u, err := address.StringToUint160(s); err == nil {
		return u
	}

	if strings.HasPrefix(s, "0x") {
		if b, err := hex.DecodeString(s[2:]); err == nil {
			return b
		}
	}

	return s
}

func printResult(res *proxy.Result) error {
	item, err := stackitem.ToJSONWithTypes(res.Item)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	fmt.Printf("Invocation: %s (height %d)\n", res.ID, res.Height)
	fmt.Printf("Result:     %s\n", item)

	for i := range res.Notifications {
		data, err := stackitem.ToJSONWithTypes(res.Notifications[i].Item)
		if err != nil {
			return fmt.Errorf("encode notification: %w", err)
		}

		fmt.Printf("Event:      %s %s\n", res.Notifications[i].Name, data)
	}

	return nil
}

var listStorage = withEnv(func(c *cli.Context, e *env) error {
	var prefix []byte
	if c.IsSet("id") {
		prefix = interop.Namespace(int32(c.Int("id")))
	}

	var n int

	e.store.Iterate(prefix, func(k, v []byte) bool {
		id, key, ok := interop.SplitKey(k)
		if !ok {
			return true
		}

		fmt.Printf("%3d %-30s %s\n", id, base58.Encode(key), hex.EncodeToString(v))
		n++

		return true
	})

	fmt.Fprintf(os.Stderr, "%d items\n", n)

	return nil
})

var dumpStorage = withEnv(func(c *cli.Context, e *env) error {
	label := c.String("label")
	if label == "" {
		return errors.New("missing dump label")
	}

	dir := c.String("dir")

	err := os.MkdirAll(dir, 0700)
	if err != nil {
		return fmt.Errorf("create root dir: %w", err)
	}

	height, err := e.dispatcher.Height()
	if err != nil {
		return err
	}

	id := dump.ID{Label: label, Height: height}

	err = dump.Save(dir, id, e.store, []dump.Namespace{
		{Name: "network", ID: proxy.ID, Hash: e.dispatcher.Hash()},
		{Name: "registry", ID: proxy.RegistryID},
		{Name: token.Name, ID: token.ID, Hash: e.dispatcher.Token().Hash()},
	})
	if err != nil {
		return err
	}

	fmt.Printf("Network storage is successfully dumped to '%s/' as %s\n", dir, id)

	return nil
})
