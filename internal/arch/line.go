package arch

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
)

// Line is a single decoded instruction of a listing.
type Line struct {
	Offset   uint64   `json:"offset" jsonschema:"description=Byte offset of the instruction inside the buffer"`
	Address  uint64   `json:"address" jsonschema:"description=Address of the instruction"`
	Raw      HexBytes `json:"raw_bytes" jsonschema:"description=Instruction bytes in buffer order"`
	Mnemonic string   `json:"mnemonic"`
	Operands string   `json:"operands,omitempty"`
	Text     string   `json:"text" jsonschema:"description=Mnemonic and operands separated by a tab"`
	Detail   *Detail  `json:"detail,omitempty"`
}

// Detail contains the optional operand level information of a line.
type Detail struct {
	Operands      []OperandDetail `json:"operands"`
	RegsRead      []string        `json:"regs_read,omitempty"`
	RegsWritten   []string        `json:"regs_written,omitempty"`
	Groups        []string        `json:"groups,omitempty"`
	Extension     string          `json:"extension"`
	CanonicalText string          `json:"canonical,omitempty" jsonschema:"description=Instruction text without pseudo mnemonic substitution"`
}

// OperandDetail describes one operand of a line.
type OperandDetail struct {
	Type   string `json:"type" jsonschema:"enum=REG,enum=IMM,enum=CSR,enum=RM,enum=MEM,enum=FENCE"`
	Value  string `json:"value"`
	Access string `json:"access,omitempty" jsonschema:"enum=READ,enum=WRITE,enum=READ | WRITE"`
}

// HexBytes is a byte slice that is serialized as a lowercase hex string.
type HexBytes []byte

// String returns the bytes in the cstool notation, space separated pairs.
func (b HexBytes) String() string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", v)
	}
	return sb.String()
}

// MarshalJSON implements json.Marshaler.
func (b HexBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(b))
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *HexBytes) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decoding hex bytes: %w", err)
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("decoding hex bytes: %w", err)
	}
	*b = decoded
	return nil
}

// JSONSchema describes the serialized form of HexBytes.
func (HexBytes) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Pattern:     "^([0-9a-f]{2})*$",
		Description: "hex encoded bytes",
	}
}
