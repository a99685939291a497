package usecase

import (
	"context"
	"fmt"

	"github.com/gabifranca/studio-gestao/internal/entity"
)

type RegisterSaleInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`

	// Venda de balcão pode ou não ter cliente identificada
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
}

type RegisterSaleOutput struct {
	Payment      *entity.PaymentRecord `json:"payment"`
	Product      *entity.Product       `json:"product"`
	RemainingQty int                   `json:"remaining_qty"`
}

// RegisterSaleUseCase é a venda de balcão (POS): baixa estoque e grava um
// pagamento já pago, sem gateway no meio.
type RegisterSaleUseCase struct {
	SettingsRepo SettingsRepositoryInterface
	PaymentRepo  PaymentRepositoryInterface
}

func NewRegisterSaleUseCase(settingsRepo SettingsRepositoryInterface, paymentRepo PaymentRepositoryInterface) *RegisterSaleUseCase {
	return &RegisterSaleUseCase{SettingsRepo: settingsRepo, PaymentRepo: paymentRepo}
}

func (uc *RegisterSaleUseCase) Execute(ctx context.Context, input RegisterSaleInput) (*RegisterSaleOutput, error) {
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	settings, err := uc.SettingsRepo.Load(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "falha ao carregar settings: " + err.Error()}
	}

	product, err := settings.FindProduct(input.ProductID)
	if err != nil {
		return nil, &DomainError{Code: CodeProductNotFound, Message: "produto não encontrado: " + input.ProductID}
	}
	if product.Stock < input.Quantity {
		return nil, &DomainError{
			Code:    CodeOutOfStock,
			Message: fmt.Sprintf("estoque insuficiente de %q: %d em estoque, %d pedidos", product.Name, product.Stock, input.Quantity),
		}
	}

	previousStock := product.Stock
	product.Stock -= input.Quantity

	record := entity.NewPaymentRecord("", "", product.PriceCents*input.Quantity, entity.MethodCash, entity.CustomerSnapshot{
		Name:  input.CustomerName,
		Phone: input.CustomerPhone,
	})
	record.Status = entity.PaymentPaid

	txn := NewTransaction()
	txn.AddOperation("save_stock", func(ctx context.Context) error {
		return uc.SettingsRepo.SaveField(ctx, "products", settings.Products)
	})
	txn.AddCompensation("restore_stock", func(ctx context.Context) error {
		product.Stock = previousStock
		return uc.SettingsRepo.SaveField(ctx, "products", settings.Products)
	})
	txn.AddOperation("create_payment", func(ctx context.Context) error {
		return uc.PaymentRepo.Create(ctx, record)
	})

	if err := txn.Execute(ctx); err != nil {
		return nil, &TechnicalError{Code: CodeDatabaseError, Message: "failed to persist sale: " + err.Error()}
	}

	return &RegisterSaleOutput{
		Payment:      record,
		Product:      product,
		RemainingQty: product.Stock,
	}, nil
}
