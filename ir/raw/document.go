package raw

// RegenPolicy controls whether page content is rebuilt automatically after
// an appearance or widget mutation.
type RegenPolicy int

const (
	// RegenManual leaves page content untouched; the caller rebuilds when
	// it chooses to.
	RegenManual RegenPolicy = iota

	// RegenAutomatic rebuilds page content after every successful mutation.
	RegenAutomatic
)

// Regenerator rebuilds a page's rendered content from its object graph.
type Regenerator interface {
	Regenerate(doc *Document, page Handle) error
}

// Document is the root container of a store-backed PDF object graph. It
// owns the store, the catalog, and per-page regeneration policies. Mutating
// operations on a Document must be serialized by the caller.
type Document struct {
	store    *Store
	catalog  Handle
	pages    Handle
	policies map[Handle]RegenPolicy
}

// NewDocument creates an empty document with a catalog and page tree.
func NewDocument() *Document {
	s := NewStore()

	pagesDict := Dict()
	pagesDict.Set("Type", Name("Pages"))
	pagesDict.Set("Kids", Array())
	pagesDict.Set("Count", Int(0))
	pages := s.Alloc(pagesDict)

	catalogDict := Dict()
	catalogDict.Set("Type", Name("Catalog"))
	catalogDict.Set("Pages", RefObj{H: pages})
	catalog := s.Alloc(catalogDict)

	return &Document{
		store:    s,
		catalog:  catalog,
		pages:    pages,
		policies: make(map[Handle]RegenPolicy),
	}
}

// Store returns the document's object store.
func (d *Document) Store() *Store { return d.store }

// Catalog returns the handle of the catalog dictionary.
func (d *Document) Catalog() Handle { return d.catalog }

// AddPage appends a page with the given media box and returns its handle.
func (d *Document) AddPage(width, height float64) Handle {
	pageDict := Dict()
	pageDict.Set("Type", Name("Page"))
	pageDict.Set("MediaBox", FloatArray(0, 0, width, height))
	page := d.store.Alloc(pageDict)

	pagesDict, _ := d.store.Dict(d.pages)
	if kids, ok := pagesDict.Get("Kids"); ok {
		if arr, ok := kids.(*ArrayObj); ok {
			arr.Append(RefObj{H: page})
			pagesDict.Set("Count", Int(int64(arr.Len())))
		}
	}
	return page
}

// Annots returns the page's annotation array, creating it on first use.
func (d *Document) Annots(page Handle) (*ArrayObj, error) {
	pageDict, err := d.store.Dict(page)
	if err != nil {
		return nil, err
	}
	if o, ok := pageDict.Get("Annots"); ok {
		if arr, ok := o.(*ArrayObj); ok {
			return arr, nil
		}
	}
	arr := Array()
	pageDict.Set("Annots", arr)
	return arr, nil
}

// ContentRegeneration returns the page's regeneration policy.
// Pages default to RegenManual.
func (d *Document) ContentRegeneration(page Handle) RegenPolicy {
	return d.policies[page]
}

// SetContentRegeneration sets the page's regeneration policy.
func (d *Document) SetContentRegeneration(page Handle, p RegenPolicy) {
	d.policies[page] = p
}
