package arweave

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"testing"

	"github.com/nestdotland/arweave-go/internal/crypto"
	"github.com/nestdotland/arweave-go/winston"
)

// helloTransaction is a data transaction with every signed field set.
func helloTransaction(t testing.TB) *Transaction {
	t.Helper()
	tx := NewDataTransaction([]byte("hello"))
	tx.Owner = loadFixtureWallet(t).Owner()
	tx.LastTx = "AQID"
	tx.Reward = winston.New(1000)
	tx.AddTag("App-Name", "arwallet")
	return tx
}

func TestNewDataTransaction(t *testing.T) {
	tx := NewDataTransaction([]byte("hello"))

	if tx.Format != TransactionFormat {
		t.Errorf("Format = %d, want %d", tx.Format, TransactionFormat)
	}
	if tx.Data != "aGVsbG8" {
		t.Errorf("Data = %s, want aGVsbG8", tx.Data)
	}
	if tx.DataSize != "5" {
		t.Errorf("DataSize = %s, want 5", tx.DataSize)
	}
	if tx.DataRoot != "LQltiI15GfZxGOByiGYthIZQ-zQMny3lv3tL_rSySmo" {
		t.Errorf("DataRoot = %s", tx.DataRoot)
	}

	data, err := tx.DecodedData()
	if err != nil || string(data) != "hello" {
		t.Errorf("DecodedData() = %q, %v", data, err)
	}
}

func TestNewDataTransaction_Empty(t *testing.T) {
	tx := NewDataTransaction(nil)

	if tx.Data != "" || tx.DataRoot != "" || tx.DataSize != "0" {
		t.Errorf("empty data transaction = %+v", tx)
	}
}

func TestNewTransfer(t *testing.T) {
	tx := NewTransfer(fixtureAddress, winston.New(winston.PerAR))

	if tx.Target != fixtureAddress {
		t.Errorf("Target = %s", tx.Target)
	}
	if tx.Quantity.String() != "1000000000000" {
		t.Errorf("Quantity = %s", tx.Quantity)
	}
	if tx.Data != "" || tx.DataSize != "0" {
		t.Errorf("transfer carries data: %+v", tx)
	}
}

func TestTag_EncodeDecode(t *testing.T) {
	tag := NewTag("App-Name", "arwallet")

	if tag.Name != "QXBwLU5hbWU" || tag.Value != "YXJ3YWxsZXQ" {
		t.Errorf("NewTag() = %+v", tag)
	}

	name, value, err := tag.Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if name != "App-Name" || value != "arwallet" {
		t.Errorf("Decode() = %q, %q", name, value)
	}

	if _, _, err := (Tag{Name: "a+b", Value: "AA"}).Decode(); err == nil {
		t.Error("Decode() should reject invalid name")
	}
	if _, _, err := (Tag{Name: "AA", Value: "a/b"}).Decode(); err == nil {
		t.Error("Decode() should reject invalid value")
	}
}

func TestTransaction_SignatureData(t *testing.T) {
	w := loadFixtureWallet(t)

	tests := []struct {
		name string
		tx   func() *Transaction
		want string
	}{
		{
			name: "data with tag",
			tx:   func() *Transaction { return helloTransaction(t) },
			want: "ea22a2b55cebedb8fbcfb132f373814beebcd072720e7d61a7bea91bfdee2a0c24f9c4310165efb1c8da95a22ceeda34",
		},
		{
			name: "transfer",
			tx: func() *Transaction {
				tx := NewTransfer(fixtureAddress, winston.New(winston.PerAR))
				tx.Owner = w.Owner()
				tx.Reward = winston.New(42)
				return tx
			},
			want: "7e3123dfb40df54fa5dd1d1f15bf6be3871acb9d6ee5e2360b238d552c430e846d873aff27cd72efe76dbdc764dba5a5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.tx().SignatureData()
			if err != nil {
				t.Fatalf("SignatureData() error = %v", err)
			}
			if hex.EncodeToString(got) != tt.want {
				t.Errorf("SignatureData() = %x, want %s", got, tt.want)
			}
		})
	}
}

func TestTransaction_SignatureData_EmptyDataSize(t *testing.T) {
	tx := helloTransaction(t)
	tx.Data, tx.DataRoot = "", ""

	tx.DataSize = "0"
	want, err := tx.SignatureData()
	if err != nil {
		t.Fatal(err)
	}

	tx.DataSize = ""
	got, err := tx.SignatureData()
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Error("empty data size should sign as \"0\"")
	}
}

func TestTransaction_SignatureData_Errors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Transaction)
		wantErr error
	}{
		{"format 1", func(tx *Transaction) { tx.Format = 1 }, ErrUnsupportedFormat},
		{"missing data root", func(tx *Transaction) { tx.DataRoot = "" }, ErrMissingDataRoot},
		{"bad owner", func(tx *Transaction) { tx.Owner = "a+b" }, nil},
		{"bad target", func(tx *Transaction) { tx.Target = "a/b" }, nil},
		{"bad anchor", func(tx *Transaction) { tx.LastTx = "AQID=" }, nil},
		{"bad tag", func(tx *Transaction) { tx.Tags = append(tx.Tags, Tag{Name: "!", Value: ""}) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := helloTransaction(t)
			tt.modify(tx)

			_, err := tx.SignatureData()
			if err == nil {
				t.Fatal("SignatureData() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("SignatureData() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWallet_SignTransaction(t *testing.T) {
	w := loadFixtureWallet(t)
	tx := helloTransaction(t)
	tx.Owner = ""

	if err := w.SignTransaction(tx); err != nil {
		t.Fatalf("SignTransaction() error = %v", err)
	}

	if tx.Owner != w.Owner() {
		t.Error("Owner not set")
	}
	sig, err := crypto.FromBase64URL(tx.Signature)
	if err != nil || len(sig) != 512 {
		t.Fatalf("Signature = %q (%v)", tx.Signature, err)
	}
	if tx.ID != crypto.ToBase64URL(crypto.Hash(sig)) {
		t.Error("ID is not the hash of the signature")
	}
	if err := tx.Verify(); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestWallet_SignTransaction_DefaultsFormat(t *testing.T) {
	w := loadFixtureWallet(t)
	tx := &Transaction{Reward: winston.New(1)}

	if err := w.SignTransaction(tx); err != nil {
		t.Fatalf("SignTransaction() error = %v", err)
	}
	if tx.Format != TransactionFormat {
		t.Errorf("Format = %d, want %d", tx.Format, TransactionFormat)
	}
	if err := tx.Verify(); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestWallet_SignTransaction_Errors(t *testing.T) {
	w := loadFixtureWallet(t)

	if err := w.SignTransaction(nil); err == nil {
		t.Error("SignTransaction(nil) should fail")
	}

	tx := helloTransaction(t)
	tx.Format = 1
	if err := w.SignTransaction(tx); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("SignTransaction() error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestTransaction_Verify_Tampered(t *testing.T) {
	w := loadFixtureWallet(t)

	tests := []struct {
		name       string
		modify     func(*Transaction)
		idMismatch bool
	}{
		{"tag changed", func(tx *Transaction) { tx.AddTag("Extra", "tag") }, false},
		{"reward changed", func(tx *Transaction) { tx.Reward = winston.New(1) }, false},
		{"owner changed", func(tx *Transaction) { tx.Owner = crypto.ToBase64URL(make([]byte, 512)) }, false},
		{"id changed", func(tx *Transaction) { tx.ID = crypto.ToBase64URL(crypto.Hash(nil)) }, true},
		{"signature changed", func(tx *Transaction) {
			sig, _ := crypto.FromBase64URL(tx.Signature)
			sig[0] ^= 0xff
			tx.Signature = crypto.ToBase64URL(sig)
		}, true},
		{"signature missing", func(tx *Transaction) { tx.Signature = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := helloTransaction(t)
			if err := w.SignTransaction(tx); err != nil {
				t.Fatal(err)
			}
			tt.modify(tx)

			err := tx.Verify()
			if !errors.Is(err, ErrSignatureInvalid) {
				t.Fatalf("Verify() error = %v, want ErrSignatureInvalid", err)
			}
			var sigErr *SignatureVerificationError
			if !errors.As(err, &sigErr) {
				t.Fatalf("expected *SignatureVerificationError, got %T", err)
			}
			if sigErr.IDMismatch != tt.idMismatch {
				t.Errorf("IDMismatch = %v, want %v", sigErr.IDMismatch, tt.idMismatch)
			}
		})
	}
}

func TestTransaction_JSON(t *testing.T) {
	w := loadFixtureWallet(t)
	tx := helloTransaction(t)
	if err := w.SignTransaction(tx); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		t.Fatal(err)
	}
	if fields["reward"] != "1000" || fields["quantity"] != "0" {
		t.Errorf("amounts not encoded as strings: reward=%v quantity=%v", fields["reward"], fields["quantity"])
	}
	if fields["last_tx"] != "AQID" || fields["data_size"] != "5" {
		t.Errorf("unexpected fields: %v", fields)
	}

	var decoded Transaction
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if err := decoded.Verify(); err != nil {
		t.Errorf("decoded transaction does not verify: %v", err)
	}
}

func TestTransaction_APIConversion(t *testing.T) {
	w := loadFixtureWallet(t)
	tx := helloTransaction(t)
	if err := w.SignTransaction(tx); err != nil {
		t.Fatal(err)
	}

	back := transactionFromAPI(tx.toAPI())
	if err := back.Verify(); err != nil {
		t.Errorf("converted transaction does not verify: %v", err)
	}
	if back.ID != tx.ID || len(back.Tags) != 1 || back.Tags[0] != tx.Tags[0] {
		t.Errorf("conversion lost fields: %+v", back)
	}

	tx.DataSize = ""
	if got := tx.toAPI().DataSize; got != "0" {
		t.Errorf("toAPI().DataSize = %q, want 0", got)
	}
}

func BenchmarkTransaction_SignatureData(b *testing.B) {
	tx := helloTransaction(b)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tx.SignatureData()
	}
}
