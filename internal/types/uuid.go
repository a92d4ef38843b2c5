package types

import (
	"fmt"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex calc_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateShortIDWithPrefix returns a short ID with a prefix.
// Used for human-readable reference numbers, ex TXC-K8fjOOfX
func GenerateShortIDWithPrefix(prefix string) string {
	once.Do(initializeSID)
	id, err := sidGenerator.Generate()
	if err != nil {
		// fall back to a ULID which is always available
		return fmt.Sprintf("%s%s", prefix, GenerateUUID())
	}
	return fmt.Sprintf("%s%s", prefix, id)
}

const (
	UUID_PREFIX_TAX_CALCULATION = "calc"
	UUID_PREFIX_TAX_SETTINGS    = "txs"
	UUID_PREFIX_PROPERTY        = "prop"
	UUID_PREFIX_PAYMENT         = "pay"
	UUID_PREFIX_EXPENSE         = "exp"

	SHORT_ID_PREFIX_CALCULATION = "TXC-"
)
