package ledger

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/openmotors/car-ledger-api/internal/adapter"
	"github.com/openmotors/car-ledger-api/internal/domain"
	"github.com/openmotors/car-ledger-api/internal/logger"
)

// marketplaceABI covers the functions of the marketplace contract the
// services call. The listed-token tuple mirrors the contract's storage
// struct field for field.
const marketplaceABI = `[
	{"inputs":[{"name":"price","type":"uint256"}],"name":"createToken","outputs":[{"name":"","type":"uint256"}],"stateMutability":"payable","type":"function"},
	{"inputs":[],"name":"getCurrentToken","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[],"name":"getListPrice","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"getListedTokenForId","outputs":[{"components":[{"name":"tokenId","type":"uint256"},{"name":"owner","type":"address"},{"name":"seller","type":"address"},{"name":"price","type":"uint256"},{"name":"currentlyListed","type":"bool"}],"name":"","type":"tuple"}],"stateMutability":"view","type":"function"},
	{"inputs":[{"name":"tokenId","type":"uint256"},{"name":"price","type":"uint256"}],"name":"createListedToken","outputs":[],"stateMutability":"payable","type":"function"},
	{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"executeSale","outputs":[],"stateMutability":"payable","type":"function"},
	{"inputs":[{"name":"tokenId","type":"uint256"}],"name":"cancelTrade","outputs":[],"stateMutability":"nonpayable","type":"function"},
	{"inputs":[],"name":"fetchUserAssest","outputs":[{"components":[{"name":"tokenId","type":"uint256"},{"name":"owner","type":"address"},{"name":"seller","type":"address"},{"name":"price","type":"uint256"},{"name":"currentlyListed","type":"bool"}],"name":"","type":"tuple[]"}],"stateMutability":"view","type":"function"}
]`

// listedToken mirrors the contract's ListedToken tuple for ABI unpacking
type listedToken struct {
	TokenId         *big.Int
	Owner           common.Address
	Seller          common.Address
	Price           *big.Int
	CurrentlyListed bool
}

// Config carries the connection and signing parameters for the
// Ethereum-backed ledger
type Config struct {
	ContractAddress string
	ChainID         int64
	PrivateKey      string
	ReceiptInterval time.Duration
	CallTimeout     time.Duration
}

type ethereumLedger struct {
	client          adapter.EthClient
	clock           adapter.Clock
	contract        common.Address
	chainID         *big.Int
	key             *ecdsa.PrivateKey
	operator        common.Address
	receiptInterval time.Duration
	callTimeout     time.Duration
	abi             abi.ABI
}

// NewEthereumLedger creates a Ledger backed by the marketplace contract.
// Write operations are signed with the configured operator key.
func NewEthereumLedger(client adapter.EthClient, clock adapter.Clock, cfg Config) (Ledger, error) {
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address: %s", cfg.ContractAddress)
	}

	parsedABI, err := abi.JSON(strings.NewReader(marketplaceABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}

	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse operator key: %w", err)
	}

	receiptInterval := cfg.ReceiptInterval
	if receiptInterval == 0 {
		receiptInterval = 2 * time.Second
	}
	callTimeout := cfg.CallTimeout
	if callTimeout == 0 {
		callTimeout = 30 * time.Second
	}

	return &ethereumLedger{
		client:          client,
		clock:           clock,
		contract:        common.HexToAddress(cfg.ContractAddress),
		chainID:         big.NewInt(cfg.ChainID),
		key:             key,
		operator:        crypto.PubkeyToAddress(key.PublicKey),
		receiptInterval: receiptInterval,
		callTimeout:     callTimeout,
		abi:             parsedABI,
	}, nil
}

// call executes a read-only contract call. A non-nil from address makes
// msg.sender-dependent views answer for that identity.
func (l *ethereumLedger) call(ctx context.Context, from *common.Address, method string, args ...interface{}) ([]byte, error) {
	data, err := l.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, l.callTimeout)
	defer cancel()

	msg := ethereum.CallMsg{To: &l.contract, Data: data}
	if from != nil {
		msg.From = *from
	}

	result, err := l.client.CallContract(timeoutCtx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to call contract: %w", err)
	}
	return result, nil
}

// transact signs, broadcasts and waits out a state-changing contract call.
// It returns only after the transaction is mined with a success status.
func (l *ethereumLedger) transact(ctx context.Context, method string, value *big.Int, args ...interface{}) (*domain.Receipt, error) {
	data, err := l.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack data: %w", err)
	}

	nonce, err := l.client.PendingNonceAt(ctx, l.operator)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := l.client.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get gas price: %w", err)
	}

	gasLimit, err := l.client.EstimateGas(ctx, ethereum.CallMsg{
		From:  l.operator,
		To:    &l.contract,
		Value: value,
		Data:  data,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &l.contract,
		Value:    value,
		Gas:      gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(l.chainID), l.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := l.client.SendTransaction(ctx, signedTx); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}

	return l.waitMined(ctx, method, signedTx.Hash())
}

// waitMined polls for the transaction receipt until the transaction is
// mined or the context expires
func (l *ethereumLedger) waitMined(ctx context.Context, method string, txHash common.Hash) (*domain.Receipt, error) {
	for {
		receipt, err := l.client.TransactionReceipt(ctx, txHash)
		if err == nil {
			if receipt.Status != types.ReceiptStatusSuccessful {
				return nil, fmt.Errorf("transaction %s reverted", txHash.Hex())
			}
			return &domain.Receipt{
				TxHash:      txHash.Hex(),
				BlockNumber: receipt.BlockNumber.Uint64(),
				GasUsed:     receipt.GasUsed,
			}, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to get receipt: %w", err)
		}

		logger.Debug("Waiting for transaction to be mined",
			zap.String("method", method),
			zap.String("txHash", txHash.Hex()))

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gave up waiting for transaction %s: %w", txHash.Hex(), ctx.Err())
		case <-l.clock.After(l.receiptInterval):
		}
	}
}

// listPriceWei fetches the contract's flat listing fee in wei
func (l *ethereumLedger) listPriceWei(ctx context.Context) (*big.Int, error) {
	result, err := l.call(ctx, nil, "getListPrice")
	if err != nil {
		return nil, err
	}

	var fee *big.Int
	if err := l.abi.UnpackIntoInterface(&fee, "getListPrice", result); err != nil {
		return nil, fmt.Errorf("failed to unpack result: %w", err)
	}
	return fee, nil
}

// ListingFee returns the flat fee the contract charges to mint and list a token
func (l *ethereumLedger) ListingFee(ctx context.Context) (decimal.Decimal, error) {
	fee, err := l.listPriceWei(ctx)
	if err != nil {
		return decimal.Zero, &domain.LedgerError{Op: "getListPrice", Err: err}
	}
	return WeiToEth(fee), nil
}

// Mint creates a new token listed at the given price. The contract assigns
// ids sequentially, so the id of the fresh token is the counter value right
// after the mint confirms.
func (l *ethereumLedger) Mint(ctx context.Context, price decimal.Decimal) (uint64, *domain.Receipt, error) {
	fee, err := l.listPriceWei(ctx)
	if err != nil {
		return 0, nil, &domain.LedgerError{Op: "getListPrice", Err: err}
	}

	receipt, err := l.transact(ctx, "createToken", fee, EthToWei(price))
	if err != nil {
		return 0, nil, &domain.LedgerError{Op: "createToken", Err: err}
	}

	result, err := l.call(ctx, nil, "getCurrentToken")
	if err != nil {
		return 0, nil, &domain.LedgerError{Op: "getCurrentToken", Err: err}
	}

	var current *big.Int
	if err := l.abi.UnpackIntoInterface(&current, "getCurrentToken", result); err != nil {
		return 0, nil, &domain.LedgerError{Op: "getCurrentToken", Err: fmt.Errorf("failed to unpack result: %w", err)}
	}

	return current.Uint64(), receipt, nil
}

// ListForSale relists a previously sold token at a new price
func (l *ethereumLedger) ListForSale(ctx context.Context, tokenID uint64, price decimal.Decimal) (*domain.Receipt, error) {
	fee, err := l.listPriceWei(ctx)
	if err != nil {
		return nil, &domain.LedgerError{Op: "getListPrice", TokenID: tokenID, Err: err}
	}

	receipt, err := l.transact(ctx, "createListedToken", fee,
		new(big.Int).SetUint64(tokenID), EthToWei(price))
	if err != nil {
		return nil, &domain.LedgerError{Op: "createListedToken", TokenID: tokenID, Err: err}
	}
	return receipt, nil
}

// ExecuteSale transfers a listed token to the buyer. The sale is first
// simulated as the buyer so a revert surfaces before anything is signed.
func (l *ethereumLedger) ExecuteSale(ctx context.Context, tokenID uint64, buyer domain.Identity, price decimal.Decimal) (*domain.Receipt, error) {
	value := EthToWei(price)

	data, err := l.abi.Pack("executeSale", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return nil, &domain.LedgerError{Op: "executeSale", TokenID: tokenID, Err: fmt.Errorf("failed to pack data: %w", err)}
	}

	buyerAddr := common.HexToAddress(buyer.String())
	if _, err := l.client.CallContract(ctx, ethereum.CallMsg{
		From:  buyerAddr,
		To:    &l.contract,
		Value: value,
		Data:  data,
	}, nil); err != nil {
		return nil, &domain.LedgerError{Op: "executeSale", TokenID: tokenID, Err: fmt.Errorf("sale simulation failed: %w", err)}
	}

	receipt, err := l.transact(ctx, "executeSale", value, new(big.Int).SetUint64(tokenID))
	if err != nil {
		return nil, &domain.LedgerError{Op: "executeSale", TokenID: tokenID, Err: err}
	}
	return receipt, nil
}

// CancelListing delists a token without transferring ownership
func (l *ethereumLedger) CancelListing(ctx context.Context, tokenID uint64) (*domain.Receipt, error) {
	receipt, err := l.transact(ctx, "cancelTrade", nil, new(big.Int).SetUint64(tokenID))
	if err != nil {
		return nil, &domain.LedgerError{Op: "cancelTrade", TokenID: tokenID, Err: err}
	}
	return receipt, nil
}

// ListingStatus returns the authoritative listing state for a token
func (l *ethereumLedger) ListingStatus(ctx context.Context, tokenID uint64) (*domain.ListingState, error) {
	result, err := l.call(ctx, nil, "getListedTokenForId", new(big.Int).SetUint64(tokenID))
	if err != nil {
		return nil, &domain.LedgerError{Op: "getListedTokenForId", TokenID: tokenID, Err: err}
	}

	var token listedToken
	if err := l.abi.UnpackIntoInterface(&token, "getListedTokenForId", result); err != nil {
		return nil, &domain.LedgerError{Op: "getListedTokenForId", TokenID: tokenID, Err: fmt.Errorf("failed to unpack result: %w", err)}
	}

	if token.TokenId.Sign() == 0 {
		return nil, &domain.LedgerError{Op: "getListedTokenForId", TokenID: tokenID, Err: domain.ErrListingNotFound}
	}

	return &domain.ListingState{
		TokenID:         token.TokenId.Uint64(),
		Seller:          domain.Identity(token.Seller.Hex()),
		Owner:           domain.Identity(token.Owner.Hex()),
		Price:           WeiToEth(token.Price),
		CurrentlyListed: token.CurrentlyListed,
	}, nil
}

// HeldTokens returns every token the identity currently holds or has
// listed, preserving ledger order
func (l *ethereumLedger) HeldTokens(ctx context.Context, identity domain.Identity) ([]domain.HeldToken, error) {
	from := common.HexToAddress(identity.String())
	result, err := l.call(ctx, &from, "fetchUserAssest")
	if err != nil {
		return nil, &domain.LedgerError{Op: "fetchUserAssest", Err: err}
	}

	var tokens []listedToken
	if err := l.abi.UnpackIntoInterface(&tokens, "fetchUserAssest", result); err != nil {
		return nil, &domain.LedgerError{Op: "fetchUserAssest", Err: fmt.Errorf("failed to unpack result: %w", err)}
	}

	held := make([]domain.HeldToken, 0, len(tokens))
	for _, t := range tokens {
		held = append(held, domain.HeldToken{
			TokenID: t.TokenId.Uint64(),
			Seller:  domain.Identity(t.Seller.Hex()),
			Owner:   domain.Identity(t.Owner.Hex()),
			Price:   WeiToEth(t.Price),
		})
	}
	return held, nil
}

// Close closes the connection
func (l *ethereumLedger) Close() {
	l.client.Close()
}
