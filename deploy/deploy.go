// Package deploy provides the review network bootstrap procedure.
package deploy

import (
	"context"
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/contracts/proxy"
	"github.com/reviewnet/reviewnet-contract/contracts/reviewnet"
	rpcreviewnet "github.com/reviewnet/reviewnet-contract/rpc/reviewnet"
	rpctoken "github.com/reviewnet/reviewnet-contract/rpc/token"
	"go.uber.org/zap"
)

// Allocation is an initial REW token distribution entry.
type Allocation struct {
	Account util.Uint160
	Amount  int64
}

// Prm groups all parameters of the review network deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Network to be initialized.
	Dispatcher *proxy.Dispatcher

	// Account managing logic modules, validators and the reward token.
	Admin util.Uint160

	// Reference of the logic module to activate. Defaults to reviewnet.Name.
	Implementation string

	// Validators to add to the pool.
	Validators []util.Uint160

	// REW tokens minted at once when the token has no supply yet.
	Allocations []Allocation
}

// Deploy brings the network represented by Prm.Dispatcher to the state
// described by Prm. Stages already done are skipped, so Deploy can be
// repeated on the same store.
//
// Summary of stages:
//  1. installation of the administrator and the reward token owner
//  2. activation (or swap) of the logic module
//  3. validator pool replenishment
//  4. initial REW token distribution
func Deploy(ctx context.Context, prm Prm) error {
	if prm.Dispatcher == nil {
		return errors.New("missing network dispatcher")
	}

	if prm.Logger == nil {
		prm.Logger = zap.NewNop()
	}

	if prm.Implementation == "" {
		prm.Implementation = reviewnet.Name
	}

	d := prm.Dispatcher
	log := prm.Logger.With(zap.String("admin", address.Uint160ToString(prm.Admin)))

	log.Info("installing network administrator...")

	err := d.Init(prm.Admin)
	if err != nil {
		return fmt.Errorf("install administrator: %w", err)
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	err = syncImplementation(log, d, prm.Admin, prm.Implementation)
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	err = syncValidators(log, rpcreviewnet.New(d, prm.Admin), prm.Validators)
	if err != nil {
		return err
	}

	if err = ctx.Err(); err != nil {
		return err
	}

	err = distributeTokens(log, rpctoken.New(d, prm.Admin), prm.Allocations)
	if err != nil {
		return err
	}

	log.Info("network successfully deployed")

	return nil
}

func syncImplementation(log *zap.Logger, d *proxy.Dispatcher, admin util.Uint160, ref string) error {
	active, version, err := d.Implementation()
	if err != nil && !errors.Is(err, common.ErrNoImplementation) {
		return fmt.Errorf("read active implementation: %w", err)
	}

	if err == nil && active == ref {
		log.Debug("implementation is already active",
			zap.String("module", ref), zap.String("version", common.VersionString(version)))
		return nil
	}

	log.Info("activating logic module...", zap.String("module", ref))

	err = d.SetImplementation(admin, ref)
	if err != nil {
		return fmt.Errorf("activate %s module: %w", ref, err)
	}

	log.Info("logic module successfully activated", zap.String("module", ref))

	return nil
}

func syncValidators(log *zap.Logger, c *rpcreviewnet.Contract, validators []util.Uint160) error {
	pool, err := c.GetValidators()
	if err != nil {
		return fmt.Errorf("read validator pool: %w", err)
	}

	known := make(map[util.Uint160]struct{}, len(pool))
	for i := range pool {
		known[pool[i]] = struct{}{}
	}

	var added int

	for i := range validators {
		if _, ok := known[validators[i]]; ok {
			continue
		}

		_, err = c.AddValidator(validators[i])
		if err != nil {
			return fmt.Errorf("add validator %s: %w", address.Uint160ToString(validators[i]), err)
		}

		known[validators[i]] = struct{}{}
		added++
	}

	log.Info("validator pool synchronized", zap.Int("added", added), zap.Int("total", len(known)))

	return nil
}

func distributeTokens(log *zap.Logger, c *rpctoken.Contract, allocations []Allocation) error {
	if len(allocations) == 0 {
		return nil
	}

	supply, err := c.TotalSupply()
	if err != nil {
		return fmt.Errorf("read REW total supply: %w", err)
	}

	if supply > 0 {
		log.Debug("REW tokens are already distributed", zap.Int64("supply", supply))
		return nil
	}

	var (
		accounts = make([]util.Uint160, len(allocations))
		amounts  = make([]int64, len(allocations))
	)

	for i := range allocations {
		accounts[i] = allocations[i].Account
		amounts[i] = allocations[i].Amount
	}

	// single call, so a failure leaves the supply at zero and the stage is
	// retried by the next run
	_, err = c.Distribute(accounts, amounts)
	if err != nil {
		return fmt.Errorf("distribute REW tokens: %w", err)
	}

	log.Info("REW tokens distributed", zap.Int("accounts", len(allocations)))

	return nil
}
