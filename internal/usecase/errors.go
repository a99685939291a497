package usecase

// Códigos dos erros de domínio expostos pros handlers
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeInvalidStage       = "INVALID_STAGE"
	CodeClassNotFound      = "CLASS_NOT_FOUND"
	CodeContactNotFound    = "CONTACT_NOT_FOUND"
	CodeProductNotFound    = "PRODUCT_NOT_FOUND"
	CodeOutOfStock         = "OUT_OF_STOCK"
	CodeAlreadyProcessed   = "PAYMENT_ALREADY_PROCESSED"
	CodeCustomerIncomplete = "CUSTOMER_DATA_INCOMPLETE"
	CodePaymentFailed      = "PAYMENT_FAILED"
	CodeConnectionError    = "CONNECTION_ERROR"
	CodeDatabaseError      = "DATABASE_ERROR"
)

type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	_, ok := err.(*DomainError)
	return ok
}

// DomainCode devolve o código quando err é DomainError, senão ""
func DomainCode(err error) string {
	if de, ok := err.(*DomainError); ok {
		return de.Code
	}
	return ""
}

type TechnicalError struct {
	Code    string
	Message string
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func IsTechnicalError(err error) bool {
	_, ok := err.(*TechnicalError)
	return ok
}
