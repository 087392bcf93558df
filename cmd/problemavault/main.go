// Command problemavault keeps named secrets in a local BadgerDB store.
// Values are zstd-compressed, then encrypted with the problema block path
// under a key derived from the PROBLEMA_VAULT_KEY passphrase.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"

	problema "github.com/problema-cipher/problema"
	"github.com/problema-cipher/problema/pkg/diskinfo"
	"github.com/problema-cipher/problema/pkg/passkey"
)

const usage = `Usage:
  %s put <name> <file>   Encrypt a file into the vault (use - for stdin)
  %s get <name>          Decrypt an entry to stdout
  %s ls                  List entry names
  %s rm <name>           Remove an entry

Environment:
  PROBLEMA_VAULT_KEY    passphrase the vault key is derived from (required)
  PROBLEMA_VAULT_PATH   data directory (default ./problema-vault)
`

const entryPrefix = "entry:"

func main() {
	progName := filepath.Base(os.Args[0])
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, progName, progName, progName, progName)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)

	v, err := openVault(log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening vault: %v\n", err)
		os.Exit(1)
	}
	defer v.Close()

	switch os.Args[1] {
	case "put":
		if len(os.Args) != 4 {
			fmt.Fprintf(os.Stderr, "Error: put requires a name and a file\n")
			os.Exit(1)
		}
		err = v.put(os.Args[2], os.Args[3])

	case "get":
		if len(os.Args) != 3 {
			fmt.Fprintf(os.Stderr, "Error: get requires a name\n")
			os.Exit(1)
		}
		err = v.get(os.Args[2])

	case "ls":
		err = v.list()

	case "rm":
		if len(os.Args) != 3 {
			fmt.Fprintf(os.Stderr, "Error: rm requires a name\n")
			os.Exit(1)
		}
		err = v.remove(os.Args[2])

	default:
		fmt.Fprintf(os.Stderr, usage, progName, progName, progName, progName)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type vault struct {
	db     *badger.DB
	cipher *problema.Cipher
	log    *logrus.Logger
}

func openVault(log *logrus.Logger) (*vault, error) {
	passphrase := os.Getenv("PROBLEMA_VAULT_KEY")
	if passphrase == "" {
		return nil, errors.New("PROBLEMA_VAULT_KEY is not set")
	}

	path := os.Getenv("PROBLEMA_VAULT_PATH")
	if path == "" {
		path = "./problema-vault"
	}
	if err := os.MkdirAll(path, 0o700); err != nil {
		return nil, err
	}

	key, err := passkey.Derive(passphrase)
	if err != nil {
		return nil, err
	}

	cipher, err := problema.Init(key[:], &problema.Config{Logger: log})
	if err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		cipher.Close()
		return nil, err
	}

	if err := diskinfo.Report(log, path); err != nil {
		log.WithError(err).Warn("could not report disk usage")
	}

	return &vault{db: db, cipher: cipher, log: log}, nil
}

func (v *vault) Close() {
	v.cipher.Close()
	if err := v.db.Close(); err != nil {
		v.log.WithError(err).Error("failed to close vault store")
	}
}

func (v *vault) put(name, file string) error {
	var value []byte
	var err error
	if file == "-" {
		value, err = readStdin()
	} else {
		value, err = os.ReadFile(file)
	}
	if err != nil {
		return err
	}

	sealed, err := sealValue(v.cipher, value)
	if err != nil {
		return err
	}

	err = v.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(entryPrefix+name), sealed)
	})
	if err != nil {
		return fmt.Errorf("failed to store entry: %w", err)
	}

	v.log.WithFields(logrus.Fields{
		"name":   name,
		"size":   len(value),
		"stored": len(sealed),
	}).Info("Entry stored")
	return nil
}

func (v *vault) get(name string) error {
	var sealed []byte
	err := v.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(entryPrefix + name))
		if err != nil {
			return err
		}
		sealed, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to read entry: %w", err)
	}

	value, err := openValue(v.cipher, sealed)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(value)
	return err
}

func (v *vault) list() error {
	return v.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(entryPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			fmt.Println(string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
}

func (v *vault) remove(name string) error {
	err := v.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(entryPrefix + name))
	})
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	v.log.WithField("name", name).Info("Entry removed")
	return nil
}

func readStdin() ([]byte, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
