package main

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	arweave "github.com/nestdotland/arweave-go"
	"github.com/nestdotland/arweave-go/internal/crypto"
)

func outFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "write to `FILE` (mode 0600) instead of stdout",
	}
}

func walletCommands(st *state) []*cli.Command {
	return []*cli.Command{
		{
			Name:   "generate",
			Usage:  "create a new 4096-bit wallet and print its JWK",
			Flags:  []cli.Flag{outFlag()},
			Action: st.runGenerate,
		},
		{
			Name:  "address",
			Usage: "print the wallet address",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "thumbprint", Usage: "print the RFC 7638 key thumbprint instead"},
			},
			Action: st.runAddress,
		},
		{
			Name:      "sign",
			Usage:     "sign the SHA-256 digest of a file (or stdin)",
			ArgsUsage: "[FILE]",
			Action:    st.runSign,
		},
		{
			Name:      "verify",
			Usage:     "verify a signature over the SHA-256 digest of a file (or stdin)",
			ArgsUsage: "[FILE]",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "signature", Aliases: []string{"s"}, Usage: "base64url signature", Required: true},
				&cli.StringFlag{Name: "owner", Usage: "verify against this base64url modulus instead of the wallet"},
			},
			Action: st.runVerify,
		},
		{
			Name:  "encrypt",
			Usage: "encrypt the wallet JWK with a password (empty passwords are refused)",
			Flags: []cli.Flag{
				outFlag(),
				&cli.StringFlag{Name: "seed", Usage: "hex seed for a reproducible IV (testing only)"},
			},
			Action: st.runEncrypt,
		},
		{
			Name:      "decrypt",
			Usage:     "decrypt a wallet produced by encrypt (empty passwords are refused)",
			ArgsUsage: "[FILE]",
			Flags:     []cli.Flag{outFlag()},
			Action:    st.runDecrypt,
		},
		{
			Name:   "export",
			Usage:  "write a password-protected export document (empty passwords are refused)",
			Flags:  []cli.Flag{outFlag()},
			Action: st.runExport,
		},
		{
			Name:      "import",
			Usage:     "restore a wallet JWK from an export document (empty passwords are refused)",
			ArgsUsage: "[FILE]",
			Flags:     []cli.Flag{outFlag()},
			Action:    st.runImport,
		},
	}
}

func (st *state) runGenerate(cctx *cli.Context) error {
	w, err := arweave.GenerateWallet()
	if err != nil {
		return fmt.Errorf("generate wallet: %w", err)
	}
	jwk, err := w.JWK()
	if err != nil {
		return fmt.Errorf("encode wallet: %w", err)
	}

	out := cctx.String("out")
	if err := st.writeOutput(out, append(jwk, '\n')); err != nil {
		return err
	}
	st.logger.Info("wallet generated", "address", w.Address())
	if out != "" {
		st.println(w.Address())
	}
	return nil
}

func (st *state) runAddress(cctx *cli.Context) error {
	w, err := st.wallet()
	if err != nil {
		return err
	}
	if cctx.Bool("thumbprint") {
		tp, err := w.Thumbprint()
		if err != nil {
			return fmt.Errorf("thumbprint: %w", err)
		}
		st.println(tp)
		return nil
	}
	st.println(w.Address())
	return nil
}

func (st *state) runSign(cctx *cli.Context) error {
	w, err := st.wallet()
	if err != nil {
		return err
	}
	data, err := st.readInput(cctx.Args().First())
	if err != nil {
		return err
	}

	sig, err := w.Sign(arweave.Hash(data))
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}
	st.println(crypto.ToBase64URL(sig))
	return nil
}

func (st *state) runVerify(cctx *cli.Context) error {
	var key *arweave.PublicKey
	if owner := cctx.String("owner"); owner != "" {
		k, err := arweave.PublicKeyFromOwner(owner)
		if err != nil {
			return fmt.Errorf("parse owner: %w", err)
		}
		key = k
	} else {
		w, err := st.wallet()
		if err != nil {
			return err
		}
		key = w.PublicKey()
	}

	sig, err := crypto.FromBase64URL(cctx.String("signature"))
	if err != nil {
		return fmt.Errorf("parse signature: %w", err)
	}
	data, err := st.readInput(cctx.Args().First())
	if err != nil {
		return err
	}

	if !key.Verify(arweave.Hash(data), sig) {
		return arweave.ErrSignatureInvalid
	}
	st.println("valid")
	return nil
}

func (st *state) runEncrypt(cctx *cli.Context) error {
	w, err := st.wallet()
	if err != nil {
		return err
	}
	pw, err := st.password("Password: ")
	if err != nil {
		return err
	}

	var sealed []byte
	if seed := cctx.String("seed"); seed != "" {
		raw, err := hex.DecodeString(seed)
		if err != nil {
			return fmt.Errorf("parse seed: %w", err)
		}
		jwk, err := w.JWK()
		if err != nil {
			return fmt.Errorf("encode wallet: %w", err)
		}
		vault := crypto.NewVault(crypto.WithRandReader(crypto.NewDeterministicReader(raw)))
		sealed, err = vault.Encrypt(pw, jwk)
		if err != nil {
			return fmt.Errorf("encrypt: %w", err)
		}
	} else if sealed, err = w.Encrypt(pw); err != nil {
		return fmt.Errorf("encrypt: %w", err)
	}

	return st.writeOutput(cctx.String("out"), []byte(crypto.ToBase64URL(sealed)+"\n"))
}

func (st *state) runDecrypt(cctx *cli.Context) error {
	data, err := st.readInput(cctx.Args().First())
	if err != nil {
		return err
	}
	sealed, err := crypto.FromBase64URL(trimInput(data))
	if err != nil {
		return fmt.Errorf("parse ciphertext: %w", err)
	}
	pw, err := st.password("Password: ")
	if err != nil {
		return err
	}

	w, err := arweave.DecryptWallet(pw, sealed)
	if err != nil {
		return err
	}
	return st.writeJWK(cctx.String("out"), w)
}

func (st *state) runExport(cctx *cli.Context) error {
	w, err := st.wallet()
	if err != nil {
		return err
	}
	pw, err := st.password("Password: ")
	if err != nil {
		return err
	}

	if out := cctx.String("out"); out != "" {
		if err := w.ExportToFile(out, pw); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		st.logger.Info("wallet exported", "address", w.Address(), "path", out)
		return nil
	}

	exported, err := w.Export(pw)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return st.printJSON(exported)
}

func (st *state) runImport(cctx *cli.Context) error {
	data, err := st.readInput(cctx.Args().First())
	if err != nil {
		return err
	}
	pw, err := st.password("Password: ")
	if err != nil {
		return err
	}

	w, err := arweave.ImportWallet(data, pw)
	if err != nil {
		if errors.Is(err, arweave.ErrDecryptionFailed) {
			return fmt.Errorf("import: wrong password or corrupted export: %w", err)
		}
		return fmt.Errorf("import: %w", err)
	}
	st.logger.Info("wallet imported", "address", w.Address())
	return st.writeJWK(cctx.String("out"), w)
}

func (st *state) writeJWK(out string, w *arweave.Wallet) error {
	jwk, err := w.JWK()
	if err != nil {
		return fmt.Errorf("encode wallet: %w", err)
	}
	return st.writeOutput(out, append(jwk, '\n'))
}
