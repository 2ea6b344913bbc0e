// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ava-labs/storymint/client"
	"github.com/ava-labs/storymint/codec"
	"github.com/ava-labs/storymint/crypto/ed25519"
	"github.com/ava-labs/storymint/metadata"
	"github.com/ava-labs/storymint/program"
	"github.com/ava-labs/storymint/rpc"
	"github.com/ava-labs/storymint/utils"
)

const (
	defaultEndpoint = "http://127.0.0.1:8899"
	requestTimeout  = 30 * time.Second
)

var (
	defaultProgramID = program.ID.ToBase58()
	defaultCoreID    = metadata.ProgramID.ToBase58()

	errAborted = errors.New("aborted")
)

func defaultKeypairPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "id.json"
	}
	return filepath.Join(home, ".config", "solana", "id.json")
}

func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), requestTimeout)
}

func addressFlag(cmd *cobra.Command, name string) (codec.Address, error) {
	s, err := cmd.Flags().GetString(name)
	if err != nil {
		return codec.EmptyAddress, err
	}
	if len(s) == 0 {
		return codec.EmptyAddress, fmt.Errorf("--%s is required", name)
	}
	addr, err := codec.ParseAddress(s)
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("--%s: %w", name, err)
	}
	return addr, nil
}

func parseArg(s string) (codec.Address, error) {
	addr, err := codec.ParseAddress(s)
	if err != nil {
		return codec.EmptyAddress, fmt.Errorf("%s: %w", s, err)
	}
	return addr, nil
}

// keypairFlag loads the keypair file named by [name], falling back to the
// payer when the flag is unset.
func keypairFlag(cmd *cobra.Command, name string) (types.Account, error) {
	path, err := cmd.Flags().GetString(name)
	if err != nil {
		return types.Account{}, err
	}
	if len(path) == 0 {
		return loadPayer(cmd)
	}
	return ed25519.LoadKeypair(path)
}

func loadPayer(cmd *cobra.Command) (types.Account, error) {
	path, err := cmd.Flags().GetString("keypair")
	if err != nil {
		return types.Account{}, err
	}
	acct, err := ed25519.LoadKeypair(path)
	if err != nil {
		return types.Account{}, fmt.Errorf("failed to load payer keypair: %w", err)
	}
	return acct, nil
}

func newBuilder(cmd *cobra.Command) (*client.Builder, error) {
	programID, err := addressFlag(cmd, "program")
	if err != nil {
		return nil, err
	}
	coreID, err := addressFlag(cmd, "core")
	if err != nil {
		return nil, err
	}
	record, err := cmd.Flags().GetBool("record-delegation")
	if err != nil {
		return nil, err
	}
	return client.NewBuilder(programID, coreID, record), nil
}

func nodeClient(cmd *cobra.Command) (*rpc.JSONRPCClient, error) {
	endpoint, err := cmd.Flags().GetString("endpoint")
	if err != nil {
		return nil, err
	}
	return rpc.NewJSONRPCClient(endpoint), nil
}

// submitter sends instructions and returns an identifier for the landed
// transaction.
type submitter interface {
	Builder() *client.Builder
	Submit(ctx context.Context, payer types.Account, ixs []types.Instruction, signers ...types.Account) (string, error)
}

type localSubmitter struct {
	*client.Client
}

func (l localSubmitter) Submit(ctx context.Context, payer types.Account, ixs []types.Instruction, signers ...types.Account) (string, error) {
	res, err := l.Send(ctx, payer, ixs, signers...)
	if res != nil {
		for _, line := range res.Logs {
			utils.Outf("{{faint}}%s{{/}}\n", line)
		}
	}
	if err != nil {
		return "", err
	}
	utils.Outf("{{yellow}}fee:{{/}} %s SOL\n", utils.FormatBalance(res.Fee))
	return res.ID, nil
}

type remoteSubmitter struct {
	*client.Remote
}

func (r remoteSubmitter) Submit(ctx context.Context, payer types.Account, ixs []types.Instruction, signers ...types.Account) (string, error) {
	return r.Send(ctx, payer, ixs, signers...)
}

func newSubmitter(cmd *cobra.Command) (submitter, error) {
	builder, err := newBuilder(cmd)
	if err != nil {
		return nil, err
	}
	cluster, err := cmd.Flags().GetString("cluster")
	if err != nil {
		return nil, err
	}
	if len(cluster) > 0 {
		return remoteSubmitter{client.NewRemote(cluster, builder)}, nil
	}
	cli, err := nodeClient(cmd)
	if err != nil {
		return nil, err
	}
	return localSubmitter{client.New(cli, builder)}, nil
}

func confirm(cmd *cobra.Command, label string) error {
	yes, err := cmd.Flags().GetBool("yes")
	if err != nil {
		return err
	}
	if yes {
		return nil
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	answer, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return errAborted
		}
		return err
	}
	if !strings.EqualFold(strings.TrimSpace(answer), "y") {
		return errAborted
	}
	return nil
}

func printTx(id string) {
	utils.Outf("{{green}}transaction:{{/}} %s\n", id)
}
