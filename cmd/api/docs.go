package main

// @title           PDV Supermercado API
// @version         1.0
// @description     API do ponto de venda para supermercados: produtos, estoque, vendas e relatórios

// @contact.name   API Support
// @contact.email  suporte@pdv-supermercado.com.br

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
