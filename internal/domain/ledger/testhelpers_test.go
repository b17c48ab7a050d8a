package ledger

func newTestRoot(name, code string) *Account {
	policy, ok := PolicyForRoot(name)
	if !ok {
		panic("unknown root " + name)
	}
	return NewRootAccount(policy, code)
}

func newTestChild(parent *Account, name, code string, attrs Attributes) *Account {
	account, err := NewAccount(parent, name, code, attrs, nil)
	if err != nil {
		panic(err)
	}
	return account
}
