package contracts

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	gsrpctypes "github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/ethereum/go-ethereum/common/hexutil"

	sdkerrors "github.com/smartcontractkit/inkabi/sdk/errors"
)

// AccountIDLength is the byte length of a contract or caller address.
const AccountIDLength = 32

// AccountID is a 32 byte Substrate account.
type AccountID [AccountIDLength]byte

func (a AccountID) String() string {
	return hexutil.Encode(a[:])
}

// NewAccountID checks the length of b and copies it into an AccountID.
func NewAccountID(b []byte) (AccountID, error) {
	var id AccountID
	if len(b) != AccountIDLength {
		return id, sdkerrors.NewInvalidAddressError(len(b))
	}
	copy(id[:], b)

	return id, nil
}

// Weight is a two dimensional weight, both parts compact encoded.
type Weight struct {
	RefTime   uint64 `json:"refTime"`
	ProofSize uint64 `json:"proofSize"`
}

func (w *Weight) Decode(decoder scale.Decoder) error {
	refTime, err := decodeCompactUint64(decoder)
	if err != nil {
		return fmt.Errorf("ref time: %w", err)
	}
	proofSize, err := decodeCompactUint64(decoder)
	if err != nil {
		return fmt.Errorf("proof size: %w", err)
	}
	w.RefTime, w.ProofSize = refTime, proofSize

	return nil
}

func (w Weight) Encode(encoder scale.Encoder) error {
	if err := encoder.EncodeUintCompact(*new(big.Int).SetUint64(w.RefTime)); err != nil {
		return err
	}

	return encoder.EncodeUintCompact(*new(big.Int).SetUint64(w.ProofSize))
}

// CallRequest is the argument of a contract call dry run.
type CallRequest struct {
	Origin              AccountID
	Dest                AccountID
	Value               *big.Int
	GasLimit            *Weight
	StorageDepositLimit *big.Int
	InputData           hexutil.Bytes
}

func (r CallRequest) Encode(encoder scale.Encoder) error {
	if err := encoder.Write(r.Origin[:]); err != nil {
		return err
	}
	if err := encoder.Write(r.Dest[:]); err != nil {
		return err
	}
	if err := encodeBalance(encoder, r.Value); err != nil {
		return err
	}

	if r.GasLimit == nil {
		if err := encoder.PushByte(0); err != nil {
			return err
		}
	} else {
		if err := encoder.PushByte(1); err != nil {
			return err
		}
		if err := encoder.Encode(*r.GasLimit); err != nil {
			return err
		}
	}

	if r.StorageDepositLimit == nil {
		if err := encoder.PushByte(0); err != nil {
			return err
		}
	} else {
		if err := encoder.PushByte(1); err != nil {
			return err
		}
		if err := encodeBalance(encoder, r.StorageDepositLimit); err != nil {
			return err
		}
	}

	return encoder.Encode([]byte(r.InputData))
}

func (r *CallRequest) Decode(decoder scale.Decoder) error {
	if err := decoder.Read(r.Origin[:]); err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	if err := decoder.Read(r.Dest[:]); err != nil {
		return fmt.Errorf("dest: %w", err)
	}

	value, err := decodeBalance(decoder)
	if err != nil {
		return fmt.Errorf("value: %w", err)
	}
	r.Value = value

	hasGasLimit, err := decodeOptionTag(decoder)
	if err != nil {
		return fmt.Errorf("gas limit: %w", err)
	}
	if hasGasLimit {
		r.GasLimit = &Weight{}
		if err := decoder.Decode(r.GasLimit); err != nil {
			return fmt.Errorf("gas limit: %w", err)
		}
	}

	hasDepositLimit, err := decodeOptionTag(decoder)
	if err != nil {
		return fmt.Errorf("storage deposit limit: %w", err)
	}
	if hasDepositLimit {
		r.StorageDepositLimit, err = decodeBalance(decoder)
		if err != nil {
			return fmt.Errorf("storage deposit limit: %w", err)
		}
	}

	var input []byte
	if err := decoder.Decode(&input); err != nil {
		return fmt.Errorf("input data: %w", err)
	}
	r.InputData = input

	return nil
}

// EncodeCall builds the hex encoded dry run request for calling the contract at address with
// input, the selector followed by the encoded arguments. The address is used as both caller and
// contract, nothing is transferred and neither gas nor storage deposit are limited.
func EncodeCall(address []byte, input []byte) (string, error) {
	id, err := NewAccountID(address)
	if err != nil {
		return "", err
	}

	return codec.EncodeToHex(CallRequest{
		Origin:    id,
		Dest:      id,
		Value:     big.NewInt(0),
		InputData: input,
	})
}

// DecodeCall parses a request built by EncodeCall.
func DecodeCall(data []byte) (*CallRequest, error) {
	req := &CallRequest{}
	if err := codec.Decode(data, req); err != nil {
		return nil, err
	}

	return req, nil
}

type StorageDepositKind uint8

const (
	StorageDepositRefund StorageDepositKind = iota
	StorageDepositCharge
)

func (k StorageDepositKind) String() string {
	switch k {
	case StorageDepositRefund:
		return "Refund"
	case StorageDepositCharge:
		return "Charge"
	default:
		return fmt.Sprintf("StorageDepositKind(%d)", uint8(k))
	}
}

// StorageDeposit is either a refund or a charge of Amount. Both branches carry a balance.
type StorageDeposit struct {
	Kind   StorageDepositKind `json:"kind"`
	Amount *big.Int           `json:"amount"`
}

// ContractExecResult is the outcome of a contract call dry run.
type ContractExecResult struct {
	GasConsumed    Weight         `json:"gasConsumed"`
	GasRequired    Weight         `json:"gasRequired"`
	StorageDeposit StorageDeposit `json:"storageDeposit"`
	DebugMessage   string         `json:"debugMessage"`
	Flags          uint32         `json:"flags"`
	Data           hexutil.Bytes  `json:"data"`
}

// Reverted reports whether the contract flagged its execution as reverted.
func (r *ContractExecResult) Reverted() bool {
	return r.Flags&1 != 0
}

// Decode reads the result fields in wire order. A failed dispatch is returned as a
// DispatchError carrying the undecoded error bytes.
func (r *ContractExecResult) Decode(decoder scale.Decoder) error {
	if err := decoder.Decode(&r.GasConsumed); err != nil {
		return fmt.Errorf("gas consumed: %w", err)
	}
	if err := decoder.Decode(&r.GasRequired); err != nil {
		return fmt.Errorf("gas required: %w", err)
	}

	kind, err := decoder.ReadOneByte()
	if err != nil {
		return fmt.Errorf("storage deposit: %w", err)
	}
	amount, err := decodeBalance(decoder)
	if err != nil {
		return fmt.Errorf("storage deposit: %w", err)
	}
	r.StorageDeposit = StorageDeposit{Kind: StorageDepositKind(kind), Amount: amount}

	if err := decoder.Decode(&r.DebugMessage); err != nil {
		return fmt.Errorf("debug message: %w", err)
	}

	tag, err := decoder.ReadOneByte()
	if err != nil {
		return fmt.Errorf("result: %w", err)
	}
	if tag != 0 {
		var raw []byte
		for {
			b, err := decoder.ReadOneByte()
			if err != nil {
				break
			}
			raw = append(raw, b)
		}

		return sdkerrors.NewDispatchError(raw)
	}

	if err := decoder.Decode(&r.Flags); err != nil {
		return fmt.Errorf("flags: %w", err)
	}

	var data []byte
	if err := decoder.Decode(&data); err != nil {
		return fmt.Errorf("data: %w", err)
	}
	r.Data = data

	return nil
}

// DecodeExecResult parses the result of a contract call dry run. Bytes following the returned
// data are ignored. A non-zero dispatch result tag returns a DispatchError.
func DecodeExecResult(data []byte) (*ContractExecResult, error) {
	res := &ContractExecResult{}
	if err := codec.Decode(data, res); err != nil {
		var dispatchErr *sdkerrors.DispatchError
		if errors.As(err, &dispatchErr) {
			return nil, dispatchErr
		}

		return nil, fmt.Errorf("failed to decode contract result: %w", err)
	}

	return res, nil
}

// DecodeResult returns the data returned by the contract from a dry run result. The dispatch
// result tag is checked rather than skipped: only tag 0 is followed by flags and data, any other
// tag fails with a DispatchError holding the remaining bytes.
func DecodeResult(data []byte) ([]byte, error) {
	res, err := DecodeExecResult(data)
	if err != nil {
		return nil, err
	}

	return res.Data, nil
}

func encodeBalance(encoder scale.Encoder, v *big.Int) error {
	if v == nil {
		v = new(big.Int)
	}

	return encoder.Encode(gsrpctypes.NewU128(*v))
}

func decodeBalance(decoder scale.Decoder) (*big.Int, error) {
	var v gsrpctypes.U128
	if err := decoder.Decode(&v); err != nil {
		return nil, err
	}

	return v.Int, nil
}

func decodeOptionTag(decoder scale.Decoder) (bool, error) {
	tag, err := decoder.ReadOneByte()
	if err != nil {
		return false, err
	}

	switch tag {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, fmt.Errorf("invalid option tag %d", tag)
	}
}

func decodeCompactUint64(decoder scale.Decoder) (uint64, error) {
	v, err := decoder.DecodeUintCompact()
	if err != nil {
		return 0, err
	}
	if !v.IsUint64() {
		return 0, fmt.Errorf("compact value %s exceeds 64 bits", v)
	}

	return v.Uint64(), nil
}
