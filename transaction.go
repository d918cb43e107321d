package arweave

import (
	"fmt"
	"strconv"

	"github.com/nestdotland/arweave-go/internal/api"
	"github.com/nestdotland/arweave-go/internal/crypto"
	"github.com/nestdotland/arweave-go/winston"
)

// TransactionFormat is the only transaction format this package signs.
const TransactionFormat = 2

// Tag is a transaction tag. Name and Value are base64url-encoded.
type Tag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// NewTag encodes a plain-text tag.
func NewTag(name, value string) Tag {
	return Tag{
		Name:  crypto.ToBase64URL([]byte(name)),
		Value: crypto.ToBase64URL([]byte(value)),
	}
}

// Decode returns the plain-text name and value.
func (t Tag) Decode() (name, value string, err error) {
	n, err := crypto.FromBase64URL(t.Name)
	if err != nil {
		return "", "", fmt.Errorf("tag name: %w", err)
	}
	v, err := crypto.FromBase64URL(t.Value)
	if err != nil {
		return "", "", fmt.Errorf("tag value: %w", err)
	}
	return string(n), string(v), nil
}

// Transaction is a ledger transaction in its JSON form. Binary fields are
// base64url strings; amounts are Winston.
type Transaction struct {
	Format    int             `json:"format"`
	ID        string          `json:"id"`
	LastTx    string          `json:"last_tx"`
	Owner     string          `json:"owner"`
	Tags      []Tag           `json:"tags"`
	Target    string          `json:"target"`
	Quantity  winston.Winston `json:"quantity"`
	Data      string          `json:"data"`
	DataSize  string          `json:"data_size"`
	DataRoot  string          `json:"data_root"`
	Reward    winston.Winston `json:"reward"`
	Signature string          `json:"signature"`
}

// NewDataTransaction returns an unsigned transaction carrying data. The data
// size and root are filled in.
func NewDataTransaction(data []byte) *Transaction {
	tx := &Transaction{
		Format:   TransactionFormat,
		Tags:     []Tag{},
		Data:     crypto.ToBase64URL(data),
		DataSize: strconv.Itoa(len(data)),
	}
	if root := crypto.DataRoot(data); root != nil {
		tx.DataRoot = crypto.ToBase64URL(root)
	}
	return tx
}

// NewTransfer returns an unsigned transaction sending quantity to target.
func NewTransfer(target string, quantity winston.Winston) *Transaction {
	return &Transaction{
		Format:   TransactionFormat,
		Tags:     []Tag{},
		Target:   target,
		Quantity: quantity,
		DataSize: "0",
	}
}

// AddTag appends a plain-text tag.
func (tx *Transaction) AddTag(name, value string) {
	tx.Tags = append(tx.Tags, NewTag(name, value))
}

// DecodedData returns the transaction data bytes.
func (tx *Transaction) DecodedData() ([]byte, error) {
	return crypto.FromBase64URL(tx.Data)
}

// SignatureData returns the deep hash of the signed fields. Only format 2
// is supported, and data must be accompanied by its data root.
func (tx *Transaction) SignatureData() ([]byte, error) {
	if tx.Format != TransactionFormat {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, tx.Format)
	}
	if tx.Data != "" && tx.DataRoot == "" {
		return nil, ErrMissingDataRoot
	}

	fields := []struct {
		name  string
		value string
	}{
		{"owner", tx.Owner},
		{"target", tx.Target},
		{"last_tx", tx.LastTx},
		{"data_root", tx.DataRoot},
	}
	decoded := make(map[string][]byte, len(fields))
	for _, f := range fields {
		raw, err := crypto.FromBase64URL(f.value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", f.name, err)
		}
		decoded[f.name] = raw
	}

	tags := make(crypto.List, 0, len(tx.Tags))
	for i, t := range tx.Tags {
		name, err := crypto.FromBase64URL(t.Name)
		if err != nil {
			return nil, fmt.Errorf("invalid tag %d name: %w", i, err)
		}
		value, err := crypto.FromBase64URL(t.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid tag %d value: %w", i, err)
		}
		tags = append(tags, crypto.List{crypto.Blob(name), crypto.Blob(value)})
	}

	dataSize := tx.DataSize
	if dataSize == "" {
		dataSize = "0"
	}

	return crypto.DeepHash(crypto.List{
		crypto.Blob(strconv.Itoa(tx.Format)),
		crypto.Blob(decoded["owner"]),
		crypto.Blob(decoded["target"]),
		crypto.Blob(tx.Quantity.String()),
		crypto.Blob(tx.Reward.String()),
		crypto.Blob(decoded["last_tx"]),
		tags,
		crypto.Blob(dataSize),
		crypto.Blob(decoded["data_root"]),
	}), nil
}

// SignTransaction sets the owner, signature and ID of tx. A zero format is
// set to 2.
func (w *Wallet) SignTransaction(tx *Transaction) error {
	if tx == nil {
		return fmt.Errorf("transaction is nil")
	}
	if tx.Format == 0 {
		tx.Format = TransactionFormat
	}
	tx.Owner = w.Owner()

	data, err := tx.SignatureData()
	if err != nil {
		return err
	}
	sig, err := w.Sign(crypto.Hash(data))
	if err != nil {
		return fmt.Errorf("sign transaction: %w", err)
	}

	tx.Signature = crypto.ToBase64URL(sig)
	tx.ID = crypto.ToBase64URL(crypto.Hash(sig))
	return nil
}

// Verify checks that the ID is the hash of the signature and that the
// signature was made by the owner. Failures match ErrSignatureInvalid.
func (tx *Transaction) Verify() error {
	owner, err := PublicKeyFromOwner(tx.Owner)
	if err != nil {
		return &SignatureVerificationError{Message: fmt.Sprintf("invalid owner: %v", err)}
	}
	sig, err := crypto.FromBase64URL(tx.Signature)
	if err != nil || len(sig) == 0 {
		return &SignatureVerificationError{Message: "invalid signature encoding"}
	}
	if id := crypto.ToBase64URL(crypto.Hash(sig)); id != tx.ID {
		return &SignatureVerificationError{
			Message:    fmt.Sprintf("id %s does not match signature hash %s", tx.ID, id),
			IDMismatch: true,
		}
	}

	data, err := tx.SignatureData()
	if err != nil {
		return err
	}
	if !owner.Verify(crypto.Hash(data), sig) {
		return &SignatureVerificationError{Message: "signature does not match owner"}
	}
	return nil
}

func (tx *Transaction) toAPI() *api.Transaction {
	tags := make([]api.Tag, len(tx.Tags))
	for i, t := range tx.Tags {
		tags[i] = api.Tag{Name: t.Name, Value: t.Value}
	}
	dataSize := tx.DataSize
	if dataSize == "" {
		dataSize = "0"
	}
	return &api.Transaction{
		Format:    tx.Format,
		ID:        tx.ID,
		LastTx:    tx.LastTx,
		Owner:     tx.Owner,
		Tags:      tags,
		Target:    tx.Target,
		Quantity:  tx.Quantity,
		Data:      tx.Data,
		DataSize:  dataSize,
		DataRoot:  tx.DataRoot,
		Reward:    tx.Reward,
		Signature: tx.Signature,
	}
}

func transactionFromAPI(t *api.Transaction) *Transaction {
	tags := make([]Tag, len(t.Tags))
	for i, tag := range t.Tags {
		tags[i] = Tag{Name: tag.Name, Value: tag.Value}
	}
	return &Transaction{
		Format:    t.Format,
		ID:        t.ID,
		LastTx:    t.LastTx,
		Owner:     t.Owner,
		Tags:      tags,
		Target:    t.Target,
		Quantity:  t.Quantity,
		Data:      t.Data,
		DataSize:  t.DataSize,
		DataRoot:  t.DataRoot,
		Reward:    t.Reward,
		Signature: t.Signature,
	}
}
