package catalog

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/reviewnet/reviewnet-contract/common"
	"github.com/reviewnet/reviewnet-contract/interop"
)

type (
	// Brand is a registered brand.
	Brand struct {
		Address util.Uint160
		Name    string
		// Reference to the logo image.
		Logo string
		// Content hash of the off-network brand description.
		Hash string
		// Account which registered the brand.
		Creator util.Uint160
	}

	// Product is a registered product of some brand.
	Product struct {
		Address     util.Uint160
		Brand       util.Uint160
		Category    int64
		Subcategory int64
		Name        string
		// Reference to the product image.
		Image       string
		Description string
		// Content hash of the off-network product description.
		Hash string
		// Account which registered the product.
		Creator util.Uint160
	}
)

const (
	brandPrefix   = 'b'
	productPrefix = 'p'
)

// CreateBrand saves new brand. Creator is set to the caller.
//
// It produces BrandAdded notification.
func CreateBrand(ic *interop.Context, b Brand) error {
	ctx := ic.Storage()
	key := brandKey(b.Address)

	if ctx.Get(key) != nil {
		return fmt.Errorf("%w: %s", common.ErrDuplicateBrand, b.Address.StringLE())
	}

	b.Creator = ic.Caller

	err := common.SetSerialized(ctx, key, &b)
	if err != nil {
		return err
	}

	ic.Notify("BrandAdded", b.Address, b.Name)

	return nil
}

// CreateProduct saves new product of the existing brand. Creator is set to
// the caller.
//
// It produces ProductAdded notification.
func CreateProduct(ic *interop.Context, p Product) error {
	ctx := ic.Storage()

	if ctx.Get(brandKey(p.Brand)) == nil {
		return fmt.Errorf("%w: %s", common.ErrUnknownBrand, p.Brand.StringLE())
	}

	key := productKey(p.Address)
	if ctx.Get(key) != nil {
		return fmt.Errorf("%w: %s", common.ErrDuplicateProduct, p.Address.StringLE())
	}

	p.Creator = ic.Caller

	err := common.SetSerialized(ctx, key, &p)
	if err != nil {
		return err
	}

	ic.Notify("ProductAdded", p.Address, p.Brand)

	return nil
}

// GetBrand returns brand by its address.
func GetBrand(ic *interop.Context, addr util.Uint160) (Brand, error) {
	var b Brand

	ok, err := common.GetSerialized(ic.Storage(), brandKey(addr), &b)
	if err != nil {
		return Brand{}, fmt.Errorf("read brand: %w", err)
	}

	if !ok {
		return Brand{}, fmt.Errorf("%w: %s", common.ErrUnknownBrand, addr.StringLE())
	}

	return b, nil
}

// GetProduct returns product by its address.
func GetProduct(ic *interop.Context, addr util.Uint160) (Product, error) {
	var p Product

	ok, err := common.GetSerialized(ic.Storage(), productKey(addr), &p)
	if err != nil {
		return Product{}, fmt.Errorf("read product: %w", err)
	}

	if !ok {
		return Product{}, fmt.Errorf("%w: %s", common.ErrUnknownProduct, addr.StringLE())
	}

	return p, nil
}

// ProductExists checks whether product with the given address is registered.
func ProductExists(ic *interop.Context, addr util.Uint160) bool {
	return ic.Storage().Get(productKey(addr)) != nil
}

func brandKey(addr util.Uint160) []byte {
	return append([]byte{brandPrefix}, addr.BytesBE()...)
}

func productKey(addr util.Uint160) []byte {
	return append([]byte{productPrefix}, addr.BytesBE()...)
}

// ToStackItem implements stackitem.Convertible.
func (b *Brand) ToStackItem() (stackitem.Item, error) {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(b.Address.BytesBE()),
		stackitem.NewByteArray([]byte(b.Name)),
		stackitem.NewByteArray([]byte(b.Logo)),
		stackitem.NewByteArray([]byte(b.Hash)),
		stackitem.NewByteArray(b.Creator.BytesBE()),
	}), nil
}

// FromStackItem implements stackitem.Convertible. Trailing fields unknown to
// the current layout are ignored.
func (b *Brand) FromStackItem(item stackitem.Item) error {
	fields, ok := item.Value().([]stackitem.Item)
	if !ok || len(fields) < 5 {
		return errors.New("invalid brand structure")
	}

	var err error

	if b.Address, err = common.BytesToUint160(fields[0]); err != nil {
		return fmt.Errorf("address: %w", err)
	}
	if b.Name, err = interop.ToString(fields[1]); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if b.Logo, err = interop.ToString(fields[2]); err != nil {
		return fmt.Errorf("logo: %w", err)
	}
	if b.Hash, err = interop.ToString(fields[3]); err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	if b.Creator, err = common.BytesToUint160(fields[4]); err != nil {
		return fmt.Errorf("creator: %w", err)
	}

	return nil
}

// ToStackItem implements stackitem.Convertible.
func (p *Product) ToStackItem() (stackitem.Item, error) {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(p.Address.BytesBE()),
		stackitem.NewByteArray(p.Brand.BytesBE()),
		stackitem.Make(p.Category),
		stackitem.Make(p.Subcategory),
		stackitem.NewByteArray([]byte(p.Name)),
		stackitem.NewByteArray([]byte(p.Image)),
		stackitem.NewByteArray([]byte(p.Description)),
		stackitem.NewByteArray([]byte(p.Hash)),
		stackitem.NewByteArray(p.Creator.BytesBE()),
	}), nil
}

// FromStackItem implements stackitem.Convertible. Trailing fields unknown to
// the current layout are ignored.
func (p *Product) FromStackItem(item stackitem.Item) error {
	fields, ok := item.Value().([]stackitem.Item)
	if !ok || len(fields) < 9 {
		return errors.New("invalid product structure")
	}

	var err error

	if p.Address, err = common.BytesToUint160(fields[0]); err != nil {
		return fmt.Errorf("address: %w", err)
	}
	if p.Brand, err = common.BytesToUint160(fields[1]); err != nil {
		return fmt.Errorf("brand: %w", err)
	}
	if p.Category, err = interop.ToInt64(fields[2]); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	if p.Subcategory, err = interop.ToInt64(fields[3]); err != nil {
		return fmt.Errorf("subcategory: %w", err)
	}
	if p.Name, err = interop.ToString(fields[4]); err != nil {
		return fmt.Errorf("name: %w", err)
	}
	if p.Image, err = interop.ToString(fields[5]); err != nil {
		return fmt.Errorf("image: %w", err)
	}
	if p.Description, err = interop.ToString(fields[6]); err != nil {
		return fmt.Errorf("description: %w", err)
	}
	if p.Hash, err = interop.ToString(fields[7]); err != nil {
		return fmt.Errorf("hash: %w", err)
	}
	if p.Creator, err = common.BytesToUint160(fields[8]); err != nil {
		return fmt.Errorf("creator: %w", err)
	}

	return nil
}
