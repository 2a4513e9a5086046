package domain

// DocumentType classifies a logistics/trade document.
type DocumentType string

const (
	DocTypeBOL               DocumentType = "BOL"
	DocTypeCommercialInvoice DocumentType = "COMMERCIAL_INVOICE"
	DocTypePackingList       DocumentType = "PACKING_LIST"
	DocTypeUnknown           DocumentType = "UNKNOWN"
)

// ParseDocumentType maps a raw model string to a DocumentType.
// Unrecognized values fall back to UNKNOWN instead of failing the response.
func ParseDocumentType(s string) DocumentType {
	switch DocumentType(s) {
	case DocTypeBOL, DocTypeCommercialInvoice, DocTypePackingList, DocTypeUnknown:
		return DocumentType(s)
	default:
		return DocTypeUnknown
	}
}

// IdentifierType is the closed set of logistics identifier kinds.
type IdentifierType string

const (
	IdentifierBillOfLading   IdentifierType = "BILL_OF_LADING"
	IdentifierHouseBOL       IdentifierType = "HOUSE_BOL_HBL"
	IdentifierMasterBOL      IdentifierType = "MASTER_BOL_MBL"
	IdentifierAirWaybill     IdentifierType = "AIR_WAYBILL_AWB"
	IdentifierBookingNumber  IdentifierType = "BOOKING_NUMBER"
	IdentifierInvoiceNumber  IdentifierType = "INVOICE_NUMBER"
	IdentifierDocumentNumber IdentifierType = "DOCUMENT_NUMBER"
	IdentifierPONumber       IdentifierType = "PO_NUMBER"
	IdentifierOther          IdentifierType = "OTHER"
)

// ParseIdentifierType maps a raw model tag to an IdentifierType, with OTHER
// as the fallback for unrecognized tags.
func ParseIdentifierType(s string) IdentifierType {
	switch IdentifierType(s) {
	case IdentifierBillOfLading, IdentifierHouseBOL, IdentifierMasterBOL,
		IdentifierAirWaybill, IdentifierBookingNumber, IdentifierInvoiceNumber,
		IdentifierDocumentNumber, IdentifierPONumber, IdentifierOther:
		return IdentifierType(s)
	default:
		return IdentifierOther
	}
}

// ConfidenceBadge is the coarse three-tier confidence label.
type ConfidenceBadge string

const (
	BadgeHigh   ConfidenceBadge = "High"
	BadgeMedium ConfidenceBadge = "Med"
	BadgeLow    ConfidenceBadge = "Low"
)

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedContentTypes maps MIME content types back to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to MIME content types.
var AllowedExtensions = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
}
