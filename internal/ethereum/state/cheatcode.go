package state

import (
	"symprove/internal/cheatcode"
	"symprove/internal/smt"

	log "github.com/sirupsen/logrus"
)

// CheatcodeCall inspects a CALL/STATICCALL target and, if it is the
// cheatcode magic address, dispatches the selector against calldata
// instead of starting a nested transaction. It mirrors NativeCall's
// "nil, nil means not handled here" convention in call.go.
func CheatcodeCall(globalState *GlobalState, calleeAddress *smt.BitVec, calldata Calldata) ([]*GlobalState, error) {
	if calleeAddress.IsSymbolic() || calleeAddress.GetBigInt().Cmp(cheatcode.MagicAddressBig) != 0 {
		return nil, nil
	}
	concrete, ok := calldata.(*ConcreteCalldata)
	if !ok || len(concrete.Concrete(nil)) < 4 {
		if err := insertReturnValue(globalState); err != nil {
			return nil, err
		}
		return []*GlobalState{globalState}, nil
	}
	raw := concrete.Concrete(nil)
	var selector [4]byte
	copy(selector[:], raw[:4])
	args := raw[4:]

	switch selector {
	case cheatcode.SelAssume:
		cond := wordBitVec(globalState, args, 0)
		globalState.WorldState.AddConstraint(*cond.Ne(smt.NewBitVecValInt64(0, 256)))
	case cheatcode.SelPrank:
		globalState.Prank = &Prank{Sender: addressArg(globalState, args, 0)}
	case cheatcode.SelPrankAddrs:
		globalState.Prank = &Prank{
			Sender: addressArg(globalState, args, 0),
			Origin: addressArg(globalState, args, 1),
		}
	case cheatcode.SelStartPrank:
		globalState.Prank = &Prank{Sender: addressArg(globalState, args, 0), Persistent: true}
	case cheatcode.SelStartPrank2:
		globalState.Prank = &Prank{
			Sender:     addressArg(globalState, args, 0),
			Origin:     addressArg(globalState, args, 1),
			Persistent: true,
		}
	case cheatcode.SelStopPrank:
		globalState.Prank = nil
	case cheatcode.SelDeal:
		addr := addressArg(globalState, args, 0)
		amount := wordBitVec(globalState, args, 1)
		if err := globalState.WorldState.SetBalance(addr, amount); err != nil {
			return nil, err
		}
	case cheatcode.SelRoll:
		globalState.Enviroment.BlockNumber = wordBitVec(globalState, args, 0)
	case cheatcode.SelWarp:
		globalState.Enviroment.Timestamp = wordBitVec(globalState, args, 0)
	case cheatcode.SelExpectRevert:
		globalState.ExpectedRevert = &ExpectedRevert{AnyData: true}
	case cheatcode.SelExpectRevertBytes4:
		var matcher [4]byte
		copy(matcher[:], args[0:4])
		globalState.ExpectedRevert = &ExpectedRevert{Matcher: matcher[:]}
	case cheatcode.SelExpectRevertBytes:
		globalState.ExpectedRevert = &ExpectedRevert{AnyData: true}
	case cheatcode.SelStore:
		addr := addressArg(globalState, args, 0)
		key := wordBitVec(globalState, args, 1)
		value := wordBitVec(globalState, args, 2)
		account := globalState.WorldState.AccountsExistOrLoad(addr)
		if err := account.StorageSet(key, value); err != nil {
			return nil, err
		}
	case cheatcode.SelLoad:
		addr := addressArg(globalState, args, 0)
		key := wordBitVec(globalState, args, 1)
		account := globalState.WorldState.AccountsExistOrLoad(addr)
		value, err := account.StorageGet(key)
		if err != nil {
			return nil, err
		}
		if err := globalState.MachineState.PushStack(value); err != nil {
			return nil, err
		}
		return []*GlobalState{globalState}, nil
	case cheatcode.SelAddr:
		// Deriving a concrete address from a private key requires ECDSA
		// math this executor has no use for elsewhere; returning the
		// private-key word itself as a placeholder address keeps the
		// calling contract's control flow intact without pretending to
		// model secp256k1 point multiplication symbolically.
		privateKey := wordBitVec(globalState, args, 0)
		if err := globalState.MachineState.PushStack(privateKey); err != nil {
			return nil, err
		}
		return []*GlobalState{globalState}, nil
	default:
		log.Infof("unrecognised cheatcode selector %x", selector)
	}
	if err := insertReturnValue(globalState); err != nil {
		return nil, err
	}
	return []*GlobalState{globalState}, nil
}

// wordBitVec reads the n-th 32-byte ABI word from args as a concrete
// 256-bit value.
func wordBitVec(globalState *GlobalState, args []byte, n int) *smt.BitVec {
	start := n * 32
	if start+32 > len(args) {
		return globalState.NewBitVec("cheatcode_arg", 256)
	}
	return smt.NewBitVecValFromBytes(args[start:start+32], 256)
}

// addressArg reads the n-th ABI word as a 160-bit address (the top 96
// bits of the word are padding).
func addressArg(globalState *GlobalState, args []byte, n int) *smt.BitVec {
	start := n * 32
	if start+32 > len(args) {
		return globalState.NewBitVec("cheatcode_addr", 256)
	}
	return smt.NewBitVecValFromBytes(args[start+12:start+32], 256)
}

// PrankedCaller returns the effective msg.sender for a new call given an
// active prank, consuming a one-shot prank in the process.
func (gs *GlobalState) PrankedCaller(defaultSender *smt.BitVec) *smt.BitVec {
	if gs.Prank == nil {
		return defaultSender
	}
	sender := gs.Prank.Sender
	if !gs.Prank.Persistent {
		gs.Prank = nil
	}
	return sender
}

// PrankedOrigin returns the effective tx.origin for a new call given an
// active prank that also overrides origin.
func (gs *GlobalState) PrankedOrigin(defaultOrigin *smt.BitVec) *smt.BitVec {
	if gs.Prank == nil || gs.Prank.Origin == nil {
		return defaultOrigin
	}
	return gs.Prank.Origin
}
