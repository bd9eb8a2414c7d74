/*
Package catalog implements brand and product registration of the review
network.

Brands and products are addressed by the identities chosen by their
creators. A product always refers to a registered brand. Records are never
modified or removed once created.

# Contract notifications

BrandAdded notification. This notification is produced when a new brand is
registered.

	BrandAdded:
	  - name: address
	    type: Hash160
	  - name: name
	    type: String

ProductAdded notification. This notification is produced when a new product
is registered.

	ProductAdded:
	  - name: address
	    type: Hash160
	  - name: brand
	    type: Hash160
*/
package catalog

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'b'<interop.Hash160> -> std.Serialize(Brand)
   registered brands (here Brand is a structure defined in current package)
 - 'p'<interop.Hash160> -> std.Serialize(Product)
   registered products (here Product is a structure defined in current package)
*/
