package dto

import (
	"pdv/internal/model"
)

// Action names every state-changing command the controller accepts.
type Action string

const (
	ActionBeginEdit          Action = "product.begin_edit"
	ActionCancelEdit         Action = "product.cancel_edit"
	ActionSetDraftStock      Action = "product.set_draft_stock"
	ActionSaveProduct        Action = "product.save"
	ActionRemoveProduct      Action = "product.remove"
	ActionAddWarehouse       Action = "warehouse.add"
	ActionRenameWarehouse    Action = "warehouse.rename"
	ActionRemoveWarehouse    Action = "warehouse.remove"
	ActionAddCartLine        Action = "cart.add_line"
	ActionRemoveCartLine     Action = "cart.remove_line"
	ActionClearCart          Action = "cart.clear"
	ActionUpdateCheckoutForm Action = "cart.update_checkout_form"
	ActionCheckout           Action = "cart.checkout"
)

// Command is a typed payload for one Action.
type Command interface {
	Action() Action
}

type BeginEdit struct{ ProductID string }
type CancelEdit struct{}
type SetDraftStock struct {
	WarehouseID string
	Quantity    FormValue
}
type SaveProduct struct{ Input ProductInput }
type RemoveProduct struct{ ProductID string }
type AddWarehouse struct{ Name FormValue }
type RenameWarehouse struct {
	WarehouseID string
	Name        FormValue
}
type RemoveWarehouse struct{ WarehouseID string }
type AddCartLine struct {
	ProductID   string
	WarehouseID string
	Quantity    FormValue
}
type RemoveCartLine struct{ ProductID, WarehouseID string }
type ClearCart struct{}
type UpdateCheckoutForm struct{ Form CheckoutFormRequest }
type Checkout struct{}

func (BeginEdit) Action() Action          { return ActionBeginEdit }
func (CancelEdit) Action() Action         { return ActionCancelEdit }
func (SetDraftStock) Action() Action      { return ActionSetDraftStock }
func (SaveProduct) Action() Action        { return ActionSaveProduct }
func (RemoveProduct) Action() Action      { return ActionRemoveProduct }
func (AddWarehouse) Action() Action       { return ActionAddWarehouse }
func (RenameWarehouse) Action() Action    { return ActionRenameWarehouse }
func (RemoveWarehouse) Action() Action    { return ActionRemoveWarehouse }
func (AddCartLine) Action() Action        { return ActionAddCartLine }
func (RemoveCartLine) Action() Action     { return ActionRemoveCartLine }
func (ClearCart) Action() Action          { return ActionClearCart }
func (UpdateCheckoutForm) Action() Action { return ActionUpdateCheckoutForm }
func (Checkout) Action() Action           { return ActionCheckout }

// View names a UI region that must re-render after a command.
type View string

const (
	ViewProducts    View = "products"
	ViewProductForm View = "product_form"
	ViewWarehouses  View = "warehouses"
	ViewCart        View = "cart"
	ViewSales       View = "sales"
)

// Result is what a successful command hands back to the UI.
type Result struct {
	Action    Action           `json:"action"`
	Rerender  []View           `json:"rerender"`
	Product   *ProductView     `json:"product,omitempty"`
	Warehouse *model.Warehouse `json:"warehouse,omitempty"`
	Sale      *model.Sale      `json:"sale,omitempty"`
	Edit      *EditContext     `json:"edit,omitempty"`
	// Warning is set when the mutation applied in memory but could not be
	// persisted.
	Warning string `json:"warning,omitempty"`
}
