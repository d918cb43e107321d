package main

import (
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	arweave "github.com/nestdotland/arweave-go"
	"github.com/nestdotland/arweave-go/winston"
)

func nodeCommands(st *state) []*cli.Command {
	arFlag := func() cli.Flag {
		return &cli.BoolFlag{Name: "ar", Usage: "print the amount in AR instead of winston"}
	}
	tagFlag := func() cli.Flag {
		return &cli.StringSliceFlag{Name: "tag", Aliases: []string{"t"}, Usage: "add a `NAME=VALUE` tag"}
	}

	return []*cli.Command{
		{
			Name:   "info",
			Usage:  "print the node's network info",
			Action: st.runInfo,
		},
		{
			Name:   "peers",
			Usage:  "list the node's peers",
			Action: st.runPeers,
		},
		{
			Name:      "price",
			Usage:     "print the reward for storing BYTES",
			ArgsUsage: "BYTES [TARGET]",
			Flags:     []cli.Flag{arFlag()},
			Action:    st.runPrice,
		},
		{
			Name:      "balance",
			Usage:     "print the balance of an address (default: the wallet)",
			ArgsUsage: "[ADDRESS]",
			Flags:     []cli.Flag{arFlag()},
			Action:    st.runBalance,
		},
		{
			Name:      "last-tx",
			Usage:     "print the last transaction ID of an address (default: the wallet)",
			ArgsUsage: "[ADDRESS]",
			Action:    st.runLastTx,
		},
		{
			Name:      "tx-status",
			Usage:     "print the confirmation status of a transaction",
			ArgsUsage: "ID",
			Action:    st.runTxStatus,
		},
		{
			Name:      "wait",
			Usage:     "wait until a transaction is confirmed",
			ArgsUsage: "ID",
			Flags: []cli.Flag{
				&cli.Int64Flag{Name: "confirmations", Usage: "confirmations to wait for", Value: 1},
				&cli.DurationFlag{Name: "timeout", Usage: "give up after this long", Value: 10 * time.Minute},
			},
			Action: st.runWait,
		},
		{
			Name:      "transfer",
			Usage:     "send winston to an address",
			ArgsUsage: "TARGET WINSTON",
			Flags:     []cli.Flag{tagFlag()},
			Action:    st.runTransfer,
		},
		{
			Name:      "upload",
			Usage:     "store a file (or stdin) in a data transaction",
			ArgsUsage: "[FILE]",
			Flags: []cli.Flag{
				tagFlag(),
				&cli.StringFlag{Name: "content-type", Usage: "Content-Type tag (default: guessed from the file name)"},
			},
			Action: st.runUpload,
		},
	}
}

func (st *state) runInfo(cctx *cli.Context) error {
	client, err := st.client()
	if err != nil {
		return err
	}
	info, err := client.NetworkInfo(cctx.Context)
	if err != nil {
		return fmt.Errorf("network info: %w", err)
	}
	return st.printJSON(info)
}

func (st *state) runPeers(cctx *cli.Context) error {
	client, err := st.client()
	if err != nil {
		return err
	}
	peers, err := client.Peers(cctx.Context)
	if err != nil {
		return fmt.Errorf("peers: %w", err)
	}
	for _, p := range peers {
		st.println(p)
	}
	return nil
}

func (st *state) runPrice(cctx *cli.Context) error {
	if cctx.NArg() < 1 {
		return errors.New("usage: arwallet price BYTES [TARGET]")
	}
	size, err := strconv.ParseInt(cctx.Args().Get(0), 10, 64)
	if err != nil || size < 0 {
		return fmt.Errorf("invalid size %q", cctx.Args().Get(0))
	}

	client, err := st.client()
	if err != nil {
		return err
	}
	price, err := client.Price(cctx.Context, size, cctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("price: %w", err)
	}
	st.printAmount(cctx, price)
	return nil
}

func (st *state) runBalance(cctx *cli.Context) error {
	address, err := st.addressArg(cctx)
	if err != nil {
		return err
	}
	client, err := st.client()
	if err != nil {
		return err
	}
	balance, err := client.Balance(cctx.Context, address)
	if err != nil {
		return fmt.Errorf("balance: %w", err)
	}
	st.printAmount(cctx, balance)
	return nil
}

func (st *state) runLastTx(cctx *cli.Context) error {
	address, err := st.addressArg(cctx)
	if err != nil {
		return err
	}
	client, err := st.client()
	if err != nil {
		return err
	}
	id, err := client.LastTransactionID(cctx.Context, address)
	if err != nil {
		return fmt.Errorf("last transaction: %w", err)
	}
	st.println(id)
	return nil
}

func (st *state) runTxStatus(cctx *cli.Context) error {
	id := cctx.Args().First()
	if id == "" {
		return errors.New("usage: arwallet tx-status ID")
	}
	client, err := st.client()
	if err != nil {
		return err
	}
	status, err := client.TransactionStatus(cctx.Context, id)
	if err != nil {
		return fmt.Errorf("transaction status: %w", err)
	}
	if status.Pending {
		st.println("pending")
		return nil
	}
	return st.printJSON(status)
}

func (st *state) runWait(cctx *cli.Context) error {
	id := cctx.Args().First()
	if id == "" {
		return errors.New("usage: arwallet wait ID")
	}
	client, err := st.client()
	if err != nil {
		return err
	}

	st.logger.Info("waiting for confirmation", "id", id, "confirmations", cctx.Int64("confirmations"))
	status, err := client.WaitForConfirmation(cctx.Context, id,
		arweave.WithMinConfirmations(cctx.Int64("confirmations")),
		arweave.WithWaitTimeout(cctx.Duration("timeout")),
	)
	if err != nil {
		return err
	}
	return st.printJSON(status)
}

func (st *state) runTransfer(cctx *cli.Context) error {
	if cctx.NArg() != 2 {
		return errors.New("usage: arwallet transfer TARGET WINSTON")
	}
	qty, err := winston.Decode(cctx.Args().Get(1))
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}

	tx := arweave.NewTransfer(cctx.Args().Get(0), qty)
	return st.send(cctx, tx)
}

func (st *state) runUpload(cctx *cli.Context) error {
	name := cctx.Args().First()
	data, err := st.readInput(name)
	if err != nil {
		return err
	}

	tx := arweave.NewDataTransaction(data)
	contentType := cctx.String("content-type")
	if contentType == "" && name != "" && name != "-" {
		contentType = mime.TypeByExtension(filepath.Ext(name))
	}
	if contentType != "" {
		tx.AddTag("Content-Type", contentType)
	}
	return st.send(cctx, tx)
}

// send tags, prepares, signs and posts tx, then prints its ID.
func (st *state) send(cctx *cli.Context, tx *arweave.Transaction) error {
	for _, raw := range cctx.StringSlice("tag") {
		name, value, ok := strings.Cut(raw, "=")
		if !ok || name == "" {
			return fmt.Errorf("invalid tag %q: want NAME=VALUE", raw)
		}
		tx.AddTag(name, value)
	}

	w, err := st.wallet()
	if err != nil {
		return err
	}
	client, err := st.client()
	if err != nil {
		return err
	}

	if err := client.PrepareTransaction(cctx.Context, w, tx); err != nil {
		return fmt.Errorf("prepare transaction: %w", err)
	}
	if err := client.SubmitTransaction(cctx.Context, tx); err != nil {
		return fmt.Errorf("submit transaction: %w", err)
	}
	st.logger.Info("transaction submitted", "id", tx.ID, "reward", tx.Reward.String())
	st.println(tx.ID)
	return nil
}

func (st *state) addressArg(cctx *cli.Context) (string, error) {
	if a := cctx.Args().First(); a != "" {
		return a, nil
	}
	w, err := st.wallet()
	if err != nil {
		return "", err
	}
	return w.Address(), nil
}

func (st *state) printAmount(cctx *cli.Context, w winston.Winston) {
	if cctx.Bool("ar") {
		st.println(w.AR())
		return
	}
	st.println(w.String())
}
