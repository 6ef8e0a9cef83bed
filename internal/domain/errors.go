package domain

import "errors"

// Erros de domínio (sem dependências externas).
var (
	ErrNotFound             = errors.New("recurso não encontrado")
	ErrEntradaInvalida      = errors.New("entrada inválida")
	ErrNaoAutorizado        = errors.New("não autorizado")
	ErrConflito             = errors.New("conflito com o estado atual")
	ErrTransicaoInvalida    = errors.New("transição de status inválida")
	ErrEstoqueInsuficiente  = errors.New("estoque insuficiente")
	ErrPaleteJaConferido    = errors.New("palete já conferido")
	ErrReceitaNaoCadastrada = errors.New("produto sem receita cadastrada")
)
