// Package arweave provides wallets, transaction signing and a node client
// for the Arweave permanent storage network.
//
// Wallets are RSA keys stored as JSON Web Keys. Transactions are signed
// with RSA-PSS over the SHA-256 digest of a SHA-384 deep hash of their
// fields, and identified by the SHA-256 of the signature.
//
// Basic usage:
//
//	wallet, err := arweave.LoadWalletFile("wallet.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := arweave.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	tx := arweave.NewDataTransaction([]byte("hello"))
//	tx.AddTag("Content-Type", "text/plain")
//
//	if err := client.PrepareTransaction(ctx, wallet, tx); err != nil {
//	    log.Fatal(err)
//	}
//	if err := client.SubmitTransaction(ctx, tx); err != nil {
//	    log.Fatal(err)
//	}
//
//	status, err := client.WaitForConfirmation(ctx, tx.ID)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Confirmations:", status.NumberOfConfirmations)
//
// Amounts are [winston.Winston] values. Errors can be matched with
// errors.Is against the sentinel errors of this package, and errors.As
// against [*APIError], [*NetworkError], [*TimeoutError], [*DecryptionError]
// and [*SignatureVerificationError].
package arweave
